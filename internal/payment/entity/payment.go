package entity

import (
	"strings"
	"time"
)

// PaymentMethod is how the fine was settled.
type PaymentMethod int16

const (
	PaymentMethodUnknown PaymentMethod = 0

	// PaymentMethodMobileMoney mean a mobile money wallet transfer.
	PaymentMethodMobileMoney PaymentMethod = 1

	// PaymentMethodCard mean a debit or credit card charge.
	PaymentMethodCard PaymentMethod = 2

	// PaymentMethodBank mean a bank transfer.
	PaymentMethodBank PaymentMethod = 3
)

func PaymentMethodFromString(str string) PaymentMethod {
	switch strings.ToLower(str) {
	case "mobile_money":
		return PaymentMethodMobileMoney
	case "card":
		return PaymentMethodCard
	case "bank":
		return PaymentMethodBank
	default:
		return PaymentMethodUnknown
	}
}

func (m PaymentMethod) String() string {
	switch m {
	case PaymentMethodMobileMoney:
		return "mobile_money"
	case PaymentMethodCard:
		return "card"
	case PaymentMethodBank:
		return "bank"
	default:
		return "unknown"
	}
}

type Payment struct {
	ID            int64
	Reference     string
	OffenseID     int64
	OffenseNumber string
	DriverID      int64
	Amount        int64
	Method        PaymentMethod
	PaidAt        time.Time
	CreatedAt     time.Time
}

type NewPayment struct {
	ID        int64
	OffenseID int64
	DriverID  int64
	Amount    int64
	Method    PaymentMethod
	PaidAt    time.Time
}

// PaymentOffense is the slice of an offense record the payment flow needs.
type PaymentOffense struct {
	ID         int64
	Number     string
	DriverID   int64
	Status     int16
	FineAmount int64
}

// Offense status codes as stored in the offenses table.
const (
	OffenseStatusConfirmed int16 = 2
	OffenseStatusPaid      int16 = 3
)

// Payable mirrors the offense lifecycle: only confirmed offenses carry a
// collectable fine.
func (o PaymentOffense) Payable() bool {
	return o.Status == OffenseStatusConfirmed
}

// MethodTotal is one row of a collection breakdown by method.
type MethodTotal struct {
	Method PaymentMethod
	Count  int64
	Amount int64
}

// MonthlyTotal is the collected amount for one calendar month.
type MonthlyTotal struct {
	Month  time.Time
	Count  int64
	Amount int64
}

// Statistics is the admin-facing payment aggregate view.
type Statistics struct {
	TotalCount  int64
	TotalAmount int64
	ByMethod    []MethodTotal
	Monthly     []MonthlyTotal
}
