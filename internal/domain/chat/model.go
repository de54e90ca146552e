package chat

import (
	"strings"
	"time"
)

const (
	RoomTypeDirect = "DIRECT"
	RoomTypeGroup  = "GROUP"

	MessageTypeText   = "TEXT"
	MessageTypeImage  = "IMAGE"
	MessageTypeSystem = "SYSTEM"
)

type Room struct {
	ID              string           `firestore:"-" json:"id"`
	Participants    []string         `firestore:"participants" json:"participants"`
	Type            string           `firestore:"type" json:"type"`
	GroupName       string           `firestore:"groupName,omitempty" json:"groupName,omitempty"`
	CreatedBy       string           `firestore:"createdBy,omitempty" json:"createdBy,omitempty"`
	LastMessageText string           `firestore:"lastMessageText" json:"lastMessageText"`
	LastActivity    time.Time        `firestore:"lastActivity" json:"lastActivity"`
	UnreadCount     map[string]int64 `firestore:"unreadCount" json:"unreadCount"`
	CreatedAt       time.Time        `firestore:"createdAt" json:"createdAt"`
}

type Message struct {
	ID        string    `firestore:"-" json:"id"`
	Text      string    `firestore:"text" json:"text"`
	ImageURL  string    `firestore:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Type      string    `firestore:"type" json:"type"`
	SenderID  string    `firestore:"senderId" json:"senderId"`
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
	IsRead    bool      `firestore:"isRead" json:"isRead"`
}

// RoomListItem is a room plus the caller's unread count, for the chat list.
type RoomListItem struct {
	Room
	Unread int64 `json:"unread"`
}

type CreateGroupInput struct {
	Name      string   `json:"name"`
	MentorID  string   `json:"mentorId"`
	MemberIDs []string `json:"memberIds"`
}

func (in *CreateGroupInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.MentorID = strings.TrimSpace(in.MentorID)
	trimmed := in.MemberIDs[:0]
	for _, id := range in.MemberIDs {
		id = strings.TrimSpace(id)
		if id != "" {
			trimmed = append(trimmed, id)
		}
	}
	in.MemberIDs = trimmed
}

type SendMessageInput struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func (in *SendMessageInput) Trim() {
	in.Text = strings.TrimSpace(in.Text)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

type AddParticipantsInput struct {
	UserIDs []string `json:"userIds"`
}

// DirectRoomID derives the deterministic id of the direct room between two
// users: the two ids sorted lexicographically, joined with "_". Every code
// path that creates or looks up a direct room must derive the id this way
// so a pair can never end up with two rooms.
func DirectRoomID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}

// NewDirectRoomDoc builds the seed document for the direct room between a
// mentee and a mentor. Written with a merge so accepting twice (or from two
// devices) stays idempotent.
func NewDirectRoomDoc(menteeID, mentorID string, now time.Time) (string, map[string]any) {
	id := DirectRoomID(menteeID, mentorID)
	return id, map[string]any{
		"participants":    []string{menteeID, mentorID},
		"type":            RoomTypeDirect,
		"lastMessageText": "",
		"lastActivity":    now,
		"unreadCount":     map[string]int64{menteeID: 0, mentorID: 0},
		"createdAt":       now,
	}
}

// newParticipants returns the ids from add that are not already members of
// cur. Membership is checked against the raw stored list, so a stored
// duplicate can never mask a genuine addition.
func newParticipants(cur, add []string) []string {
	seen := make(map[string]bool, len(cur))
	for _, id := range cur {
		seen[id] = true
	}
	var out []string
	for _, id := range add {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// unionParticipants appends the ids from add that are not already in cur.
// Order of cur is preserved; duplicates within add collapse too.
func unionParticipants(cur, add []string) []string {
	seen := make(map[string]bool, len(cur)+len(add))
	out := make([]string, 0, len(cur)+len(add))
	for _, id := range cur {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	for _, id := range add {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
