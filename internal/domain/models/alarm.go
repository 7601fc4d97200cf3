package models

import (
	"fmt"
)

type Alarm struct {
	UserID          int64  `json:"user_id"`
	ChatID          int64  `json:"chat_id"`
	Cron            string `json:"cron"`
	Title           string `json:"title"`
	Strict          bool   `json:"is_strict"`
	Onceoff         bool   `json:"is_onceoff"`
	Disabled        bool   `json:"is_disabled"`
	Pending         bool   `json:"is_pending"`
	Informing       bool   `json:"is_informing"`
	ChallengeAnswer string `json:"strict_challenge"`
	RetryAt         int64  `json:"retry_at"`
}

func NewAlarm(userID, chatID int64, cronExpr, title string, strict bool) *Alarm {
	return &Alarm{
		UserID: userID,
		ChatID: chatID,
		Cron:   cronExpr,
		Title:  title,
		Strict: strict,
	}
}

func (a *Alarm) String() string {
	return fmt.Sprintf("%d@%d://%s %s", a.UserID, a.ChatID, a.Cron, a.Title)
}

// State — полный снимок данных процесса, сохраняемый на диск целиком.
type State struct {
	Alarms    map[int64][]*Alarm `json:"alarms"`
	Timezones map[int64]string   `json:"timezones"`
	Sleeping  map[int64][]int64  `json:"sleeping"`
	Users     map[int64]string   `json:"users"`
}

func NewState() *State {
	return &State{
		Alarms:    make(map[int64][]*Alarm),
		Timezones: make(map[int64]string),
		Sleeping:  make(map[int64][]int64),
		Users:     make(map[int64]string),
	}
}
