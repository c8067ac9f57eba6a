package event

const OffenseRecordedDestination string = "offense_recorded"
const OffenseRecordedConsumerNotification string = "offense_recorded_notification"

type OffenseRecordedMessage struct {
	OffenseID     int64  `json:"offense_id"`
	OffenseNumber string `json:"offense_number"`
	DriverID      int64  `json:"driver_id"`
	OffenseType   string `json:"offense_type"`
	FineAmount    int64  `json:"fine_amount"`
	Location      string `json:"location"`
}
