package entity

import "time"

// Message AI yordamchi suhbatidagi xabar
type Message struct {
	ID        string
	UserID    int64
	Username  string
	Text      string
	Response  string
	Timestamp time.Time
}
