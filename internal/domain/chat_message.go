package domain

// ChatMessage is a single chat entry as supplied by the sending client.
// The server stores and relays it verbatim; it is never mutated after
// being appended to a room's log.
type ChatMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Text       string `json:"text"`
	Timestamp  string `json:"timestamp"`
}
