package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents one turn in a support conversation. Seq orders a
// user's messages independently of wall-clock time; canned failure
// messages are shown to the user but never persisted, so a stored row
// always has a non-zero Seq.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Role      string    `gorm:"not null" json:"role"` // "user" for ask, "assistant" for answer
	Content   string    `gorm:"type:text;not null" json:"content"`
	Seq       uint64    `gorm:"not null;index:idx_owner_seq,priority:2" json:"seq"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
	UID       string    `gorm:"not null;index:idx_owner_seq,priority:1" json:"uid"`
}
