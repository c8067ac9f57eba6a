package event

const AppealSubmittedDestination string = "appeal_submitted"
const AppealSubmittedConsumerNotification string = "appeal_submitted_notification"

type AppealSubmittedMessage struct {
	AppealID      int64  `json:"appeal_id"`
	AppealNumber  string `json:"appeal_number"`
	OffenseID     int64  `json:"offense_id"`
	OffenseNumber string `json:"offense_number"`
	DriverID      int64  `json:"driver_id"`
	DueAt         int64  `json:"due_at"`
}
