package chat

// Client -> server event types
const (
	EvJoinRoom    = "join-room"
	EvLeaveRoom   = "leave-room"
	EvSendMessage = "send-message"
)

// Server -> client event types
const (
	EvParticipantJoined = "participant-joined"
	EvParticipantLeft   = "participant-left"
	EvChatMessage       = "chat-message"
)

// ClientEvent is one inbound frame from a websocket client
type ClientEvent struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId,omitempty"`
	Message string `json:"message,omitempty"`
	Sender  string `json:"sender,omitempty"`
}

// ServerEvent is one outbound frame. RoomID routes the event on the client
// since a single connection can occupy several rooms at once.
type ServerEvent struct {
	Type         string `json:"type"`
	RoomID       string `json:"roomId"`
	ConnectionID string `json:"connectionId,omitempty"`
	Message      string `json:"message,omitempty"`
	Sender       string `json:"sender,omitempty"`
	Timestamp    string `json:"timestamp,omitempty"`
}
