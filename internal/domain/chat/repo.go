package chat

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const (
	ColChats    = "chats"
	ColMessages = "messages"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) roomRef(roomID string) *firestore.DocumentRef {
	return r.fs.Collection(ColChats).Doc(roomID)
}

func (r *Repo) messagesCol(roomID string) *firestore.CollectionRef {
	return r.roomRef(roomID).Collection(ColMessages)
}

func (r *Repo) GetRoom(ctx context.Context, roomID string) (*Room, error) {
	doc, err := r.roomRef(roomID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: room not found", ErrNotFound)
	}
	var room Room
	if err := doc.DataTo(&room); err != nil {
		return nil, fmt.Errorf("failed to decode room: %w", err)
	}
	room.ID = doc.Ref.ID
	return &room, nil
}

// RoomsForUser lists the rooms the user participates in, most recent
// activity first.
func (r *Repo) RoomsForUser(ctx context.Context, uid string, limit int) ([]Room, error) {
	it := r.fs.Collection(ColChats).
		Where("participants", "array-contains", uid).
		OrderBy("lastActivity", firestore.Desc).
		Limit(limit).
		Documents(ctx)

	var rooms []Room
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list rooms: %w", err)
		}
		var room Room
		if err := doc.DataTo(&room); err != nil {
			log.Printf("[chat] skipping undecodable room %s: %v", doc.Ref.ID, err)
			continue
		}
		room.ID = doc.Ref.ID
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// CreateGroupRoom writes the room document and its synthetic SYSTEM message
// in one batch: both land or neither does.
func (r *Repo) CreateGroupRoom(ctx context.Context, room Room, systemText string) (*Room, error) {
	roomRef := r.fs.Collection(ColChats).NewDoc()
	room.ID = roomRef.ID
	msgRef := roomRef.Collection(ColMessages).NewDoc()

	batch := r.fs.Batch()
	batch.Set(roomRef, room)
	batch.Set(msgRef, Message{
		Text:      systemText,
		Type:      MessageTypeSystem,
		SenderID:  room.CreatedBy,
		Timestamp: room.CreatedAt,
		IsRead:    true,
	})

	if _, err := batch.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return &room, nil
}

// SetParticipants overwrites the participant list and seeds a zero unread
// counter for each new participant.
func (r *Repo) SetParticipants(ctx context.Context, roomID string, participants, added []string) error {
	updates := []firestore.Update{
		{Path: "participants", Value: participants},
	}
	for _, uid := range added {
		updates = append(updates, firestore.Update{
			FieldPath: firestore.FieldPath{"unreadCount", uid},
			Value:     int64(0),
		})
	}
	if _, err := r.roomRef(roomID).Update(ctx, updates); err != nil {
		return fmt.Errorf("failed to update participants: %w", err)
	}
	return nil
}

// AddMessage appends a message to the room's subcollection.
func (r *Repo) AddMessage(ctx context.Context, roomID string, msg Message) (*Message, error) {
	ref := r.messagesCol(roomID).NewDoc()
	if _, err := ref.Set(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	msg.ID = ref.ID
	return &msg, nil
}

// UpdatePreview refreshes the owning room's denormalized preview fields and
// bumps the unread counter of every participant except the sender. This is
// a separate write from AddMessage; a crash between the two leaves a stale
// preview, which the schema tolerates.
func (r *Repo) UpdatePreview(ctx context.Context, roomID, senderID, previewText string, participants []string, at time.Time) error {
	updates := []firestore.Update{
		{Path: "lastMessageText", Value: previewText},
		{Path: "lastActivity", Value: at},
	}
	for _, uid := range participants {
		if uid == senderID {
			continue
		}
		updates = append(updates, firestore.Update{
			FieldPath: firestore.FieldPath{"unreadCount", uid},
			Value:     firestore.Increment(1),
		})
	}
	if _, err := r.roomRef(roomID).Update(ctx, updates); err != nil {
		return fmt.Errorf("failed to update room preview: %w", err)
	}
	return nil
}

// ListMessages returns messages oldest-first.
func (r *Repo) ListMessages(ctx context.Context, roomID string, limit int) ([]Message, error) {
	it := r.messagesCol(roomID).
		OrderBy("timestamp", firestore.Asc).
		Limit(limit).
		Documents(ctx)

	var msgs []Message
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}
		var m Message
		if err := doc.DataTo(&m); err != nil {
			log.Printf("[chat] skipping undecodable message %s in room %s: %v", doc.Ref.ID, roomID, err)
			continue
		}
		m.ID = doc.Ref.ID
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// CountUnread counts messages in the room not sent by uid and not yet read.
func (r *Repo) CountUnread(ctx context.Context, roomID, uid string) (int64, error) {
	it := r.messagesCol(roomID).
		Where("isRead", "==", false).
		Where("senderId", "!=", uid).
		Documents(ctx)

	var count int64
	for {
		_, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to count unread: %w", err)
		}
		count++
	}
	return count, nil
}

// MarkRead flips isRead on every unread message from other senders and
// zeroes the caller's unread counter. Batched in chunks under the
// Firestore 500-write limit.
func (r *Repo) MarkRead(ctx context.Context, roomID, uid string) (int, error) {
	it := r.messagesCol(roomID).
		Where("isRead", "==", false).
		Where("senderId", "!=", uid).
		Documents(ctx)

	batch := r.fs.Batch()
	count := 0
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to query unread messages: %w", err)
		}

		batch.Set(doc.Ref, map[string]any{"isRead": true}, firestore.MergeAll)
		count++

		if count%450 == 0 {
			if _, err := batch.Commit(ctx); err != nil {
				return 0, fmt.Errorf("failed to mark messages read: %w", err)
			}
			batch = r.fs.Batch()
		}
	}

	batch.Update(r.roomRef(roomID), []firestore.Update{{
		FieldPath: firestore.FieldPath{"unreadCount", uid},
		Value:     int64(0),
	}})

	if _, err := batch.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return count, nil
}
