package entity

import "strings"

// OffenseType classifies a recorded traffic offense.
type OffenseType int16

const (
	OffenseTypeUnknown         OffenseType = 0
	OffenseTypeSpeeding        OffenseType = 1
	OffenseTypeRedLight        OffenseType = 2
	OffenseTypeIllegalParking  OffenseType = 3
	OffenseTypeDrunkDriving    OffenseType = 4
	OffenseTypeNoLicense       OffenseType = 5
	OffenseTypePhoneUsage      OffenseType = 6
	OffenseTypeRecklessDriving OffenseType = 7
	OffenseTypeOther           OffenseType = 8
)

func OffenseTypeFromString(str string) OffenseType {
	switch strings.ToLower(str) {
	case "speeding":
		return OffenseTypeSpeeding
	case "red_light":
		return OffenseTypeRedLight
	case "illegal_parking":
		return OffenseTypeIllegalParking
	case "drunk_driving":
		return OffenseTypeDrunkDriving
	case "no_license":
		return OffenseTypeNoLicense
	case "phone_usage":
		return OffenseTypePhoneUsage
	case "reckless_driving":
		return OffenseTypeRecklessDriving
	case "other":
		return OffenseTypeOther
	default:
		return OffenseTypeUnknown
	}
}

func (t OffenseType) String() string {
	switch t {
	case OffenseTypeSpeeding:
		return "speeding"
	case OffenseTypeRedLight:
		return "red_light"
	case OffenseTypeIllegalParking:
		return "illegal_parking"
	case OffenseTypeDrunkDriving:
		return "drunk_driving"
	case OffenseTypeNoLicense:
		return "no_license"
	case OffenseTypePhoneUsage:
		return "phone_usage"
	case OffenseTypeRecklessDriving:
		return "reckless_driving"
	case OffenseTypeOther:
		return "other"
	default:
		return "unknown"
	}
}

// OffenseStatus is the lifecycle state of an offense.
type OffenseStatus int16

const (
	OffenseStatusUnknown OffenseStatus = 0

	// OffenseStatusPending mean the offense is recorded but not yet confirmed.
	OffenseStatusPending OffenseStatus = 1

	// OffenseStatusConfirmed mean the offense stands and the fine is payable.
	OffenseStatusConfirmed OffenseStatus = 2

	// OffenseStatusPaid mean the fine has been settled.
	OffenseStatusPaid OffenseStatus = 3

	// OffenseStatusCancelled mean the offense was withdrawn or overturned.
	OffenseStatusCancelled OffenseStatus = 4
)

func OffenseStatusFromString(str string) OffenseStatus {
	switch strings.ToLower(str) {
	case "pending":
		return OffenseStatusPending
	case "confirmed":
		return OffenseStatusConfirmed
	case "paid":
		return OffenseStatusPaid
	case "cancelled":
		return OffenseStatusCancelled
	default:
		return OffenseStatusUnknown
	}
}

func (s OffenseStatus) String() string {
	switch s {
	case OffenseStatusPending:
		return "pending"
	case OffenseStatusConfirmed:
		return "confirmed"
	case OffenseStatusPaid:
		return "paid"
	case OffenseStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
