package event

const OTPRequestedDestination string = "otp_requested"
const OTPRequestedConsumerNotification string = "otp_requested_notification"

type OTPRequestedMessage struct {
	UserID  int64  `json:"user_id"`
	Contact string `json:"contact"`
	Channel string `json:"channel"`
	Code    string `json:"code"`
	Lang    string `json:"lang"`
}
