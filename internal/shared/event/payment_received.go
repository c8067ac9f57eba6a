package event

const PaymentReceivedDestination string = "payment_received"
const PaymentReceivedConsumerNotification string = "payment_received_notification"

type PaymentReceivedMessage struct {
	PaymentID     int64  `json:"payment_id"`
	Reference     string `json:"reference"`
	OffenseID     int64  `json:"offense_id"`
	OffenseNumber string `json:"offense_number"`
	DriverID      int64  `json:"driver_id"`
	Amount        int64  `json:"amount"`
}
