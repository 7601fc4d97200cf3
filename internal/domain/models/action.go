package models

// Action — исходящее действие к внешним коллабораторам.
// Закрытый набор типов: новые действия добавляются здесь и в диспетчере.
type Action interface {
	isAction()
}

type SendText struct {
	ChatID  int64
	Text    string
	ReplyTo int
}

type PlaceCall struct {
	UserID int64
}

type DiscardCall struct {
	CallID int64
}

type RestrictMember struct {
	ChatID int64
	UserID int64
}

type RestoreMember struct {
	ChatID int64
	UserID int64
}

func (*SendText) isAction()       {}
func (*PlaceCall) isAction()      {}
func (*DiscardCall) isAction()    {}
func (*RestrictMember) isAction() {}
func (*RestoreMember) isAction()  {}
