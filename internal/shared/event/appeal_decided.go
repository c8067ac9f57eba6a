package event

const AppealDecidedDestination string = "appeal_decided"
const AppealDecidedConsumerNotification string = "appeal_decided_notification"

type AppealDecidedMessage struct {
	AppealID      int64  `json:"appeal_id"`
	AppealNumber  string `json:"appeal_number"`
	OffenseID     int64  `json:"offense_id"`
	OffenseNumber string `json:"offense_number"`
	DriverID      int64  `json:"driver_id"`
	Decision      string `json:"decision"`
	Reason        string `json:"reason"`
}
