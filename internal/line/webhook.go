package line

// Webhook payload types.  Only the fields this service branches on are
// modelled; unknown event types are skipped by the handler.

// WebhookPayload is the body POSTed by the LINE platform.
type WebhookPayload struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

// Event is one webhook event.  Postback is non-nil only for postback
// events (the join button sends one).
type Event struct {
	Type       string    `json:"type"`
	Timestamp  int64     `json:"timestamp"`
	ReplyToken string    `json:"replyToken"`
	Source     Source    `json:"source"`
	Postback   *Postback `json:"postback"`
}

// Source identifies who triggered the event and from which chat.
type Source struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
}

// Postback carries the data string attached to a postback action, e.g.
// "action=join&reservation=42".
type Postback struct {
	Data string `json:"data"`
}
