package dto

// MessagingLinkResponse respuesta de GET /api/messaging/link.
type MessagingLinkResponse struct {
	Phone string `json:"phone"`
	Link  string `json:"link"`
}
