// internal/domain/models/contact.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact statuses. Any status may follow any other; closed can be reopened.
const (
	ContactStatusNew        = "new"
	ContactStatusContacted  = "contacted"
	ContactStatusInProgress = "in-progress"
	ContactStatusClosed     = "closed"
)

// Contact priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Contact is a lead submitted through the public contact form.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Interest  string             `bson:"interest,omitempty" json:"interest,omitempty"`
	Message   string             `bson:"message" json:"message"`
	Status    string             `bson:"status" json:"status"`
	Priority  string             `bson:"priority" json:"priority"`
	IsRead    bool               `bson:"is_read" json:"isRead"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	ReadAt    *time.Time         `bson:"read_at,omitempty" json:"readAt,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ContactStatuses lists every valid contact status.
func ContactStatuses() []string {
	return []string{ContactStatusNew, ContactStatusContacted, ContactStatusInProgress, ContactStatusClosed}
}

// Priorities lists every valid contact priority.
func Priorities() []string {
	return []string{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValidContactStatus reports whether s is a known contact status.
func IsValidContactStatus(s string) bool {
	for _, v := range ContactStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidPriority reports whether p is a known contact priority.
func IsValidPriority(p string) bool {
	for _, v := range Priorities() {
		if v == p {
			return true
		}
	}
	return false
}
