package mentorship

import (
	"strings"
	"time"
)

// Status is the request lifecycle state. Transitions only move forward:
// PENDING -> ACCEPTED | DECLINED, ACCEPTED -> COMPLETED. A declined or
// completed request is terminal; re-requesting means creating a new record.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusDeclined  Status = "DECLINED"
	StatusCompleted Status = "COMPLETED"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusAccepted:
		return StatusAccepted, true
	case StatusDeclined:
		return StatusDeclined, true
	case StatusCompleted:
		return StatusCompleted, true
	default:
		return "", false
	}
}

func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusAccepted || to == StatusDeclined
	case StatusAccepted:
		return to == StatusCompleted
	default:
		return false
	}
}

type Request struct {
	ID               string    `firestore:"-" json:"id"`
	MenteeID         string    `firestore:"menteeId" json:"menteeId"`
	MentorID         string    `firestore:"mentorId" json:"mentorId"`
	MenteeName       string    `firestore:"menteeName" json:"menteeName"`
	MenteePhotoURL   string    `firestore:"menteePhotoUrl,omitempty" json:"menteePhotoUrl,omitempty"`
	Status           Status    `firestore:"status" json:"status"`
	RequestTimestamp time.Time `firestore:"requestTimestamp" json:"requestTimestamp"`
	SessionCount     int       `firestore:"sessionCount" json:"sessionCount"`
}

type CreateRequestInput struct {
	MentorID       string `json:"mentorId"`
	MenteeName     string `json:"menteeName"`
	MenteePhotoURL string `json:"menteePhotoUrl,omitempty"`
}

func (in *CreateRequestInput) Trim() {
	in.MentorID = strings.TrimSpace(in.MentorID)
	in.MenteeName = strings.TrimSpace(in.MenteeName)
	in.MenteePhotoURL = strings.TrimSpace(in.MenteePhotoURL)
}
