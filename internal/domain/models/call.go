package models

type CallStatus string

const (
	CallPending      CallStatus = "pending"
	CallKeyExchanged CallStatus = "key_exchanged"
	CallDiscarded    CallStatus = "discarded"
)

// CallEvent — событие смены состояния звонка от внешнего шлюза.
type CallEvent struct {
	UserID     int64      `json:"user_id"`
	CallID     int64      `json:"call_id"`
	Status     CallStatus `json:"state"`
	IsOutgoing bool       `json:"is_outgoing"`
}

// IncomingText — входящее текстовое сообщение.
type IncomingText struct {
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
}

// UserProfile — обновление отображаемого имени пользователя.
type UserProfile struct {
	UserID      int64
	DisplayName string
}
