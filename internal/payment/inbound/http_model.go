package inbound

import (
	"time"
)

type PayRequest struct {
	OffenseID int64  `json:"offense_id,string"`
	Method    string `json:"method"`
}

type PayResponse struct {
	ID        int64     `json:"id,string"`
	Reference string    `json:"reference"`
	OffenseID int64     `json:"offense_id,string"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	PaidAt    time.Time `json:"paid_at"`
}

func (PayResponse) Message() string {
	return "Payment received."
}

type ReceiptResponse struct {
	ID            int64     `json:"id,string"`
	Reference     string    `json:"reference"`
	OffenseID     int64     `json:"offense_id,string"`
	OffenseNumber string    `json:"offense_number"`
	DriverID      int64     `json:"driver_id,string"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"`
	PaidAt        time.Time `json:"paid_at"`
}

type MethodTotalResponse struct {
	Method string `json:"method"`
	Count  int64  `json:"count"`
	Amount int64  `json:"amount"`
}

type MonthlyTotalResponse struct {
	Month  time.Time `json:"month"`
	Count  int64     `json:"count"`
	Amount int64     `json:"amount"`
}

type PaymentStatisticsResponse struct {
	TotalCount  int64                  `json:"total_count"`
	TotalAmount int64                  `json:"total_amount"`
	ByMethod    []MethodTotalResponse  `json:"by_method"`
	Monthly     []MonthlyTotalResponse `json:"monthly"`
}
