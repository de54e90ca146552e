package mentorship

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/chat"
)

const ColRequests = "mentorship_requests"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) Create(ctx context.Context, req Request) (*Request, error) {
	ref := r.fs.Collection(ColRequests).NewDoc()
	if _, err := ref.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.ID = ref.ID
	return &req, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Request, error) {
	doc, err := r.fs.Collection(ColRequests).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: request not found", ErrNotFound)
	}
	var req Request
	if err := doc.DataTo(&req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	req.ID = doc.Ref.ID
	return &req, nil
}

func (r *Repo) listBy(ctx context.Context, field, value string, limit int) ([]Request, error) {
	it := r.fs.Collection(ColRequests).
		Where(field, "==", value).
		OrderBy("requestTimestamp", firestore.Desc).
		Limit(limit).
		Documents(ctx)

	var out []Request
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list requests: %w", err)
		}
		var req Request
		if err := doc.DataTo(&req); err != nil {
			log.Printf("[mentorship] skipping undecodable request %s: %v", doc.Ref.ID, err)
			continue
		}
		req.ID = doc.Ref.ID
		out = append(out, req)
	}
	return out, nil
}

func (r *Repo) ListForMentor(ctx context.Context, mentorID string, limit int) ([]Request, error) {
	return r.listBy(ctx, "mentorId", mentorID, limit)
}

func (r *Repo) ListForMentee(ctx context.Context, menteeID string, limit int) ([]Request, error) {
	return r.listBy(ctx, "menteeId", menteeID, limit)
}

// Accept commits the status flip and the direct-room upsert in a single
// batch so the two effects are visible together or not at all. The room
// write is a merge against the deterministic direct-room id, which keeps a
// double accept (or two devices racing) idempotent.
func (r *Repo) Accept(ctx context.Context, req *Request) (string, error) {
	now := time.Now().UTC()
	roomID, roomDoc := chat.NewDirectRoomDoc(req.MenteeID, req.MentorID, now)

	batch := r.fs.Batch()
	batch.Update(r.fs.Collection(ColRequests).Doc(req.ID), []firestore.Update{
		{Path: "status", Value: string(StatusAccepted)},
	})
	batch.Set(r.fs.Collection(chat.ColChats).Doc(roomID), roomDoc, firestore.MergeAll)

	if _, err := batch.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to accept request: %w", err)
	}
	return roomID, nil
}

func (r *Repo) SetStatus(ctx context.Context, id string, status Status) error {
	_, err := r.fs.Collection(ColRequests).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(status)},
	})
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	return nil
}

// DeleteForUser removes every request where the user appears as mentee or
// mentor. Used by the best-effort cascade on profile deletion.
func (r *Repo) DeleteForUser(ctx context.Context, uid string) (int, error) {
	deleted := 0
	for _, field := range []string{"menteeId", "mentorId"} {
		it := r.fs.Collection(ColRequests).Where(field, "==", uid).Documents(ctx)
		for {
			doc, err := it.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return deleted, fmt.Errorf("failed to list requests for cleanup: %w", err)
			}
			if _, err := doc.Ref.Delete(ctx); err != nil {
				return deleted, fmt.Errorf("failed to delete request %s: %w", doc.Ref.ID, err)
			}
			deleted++
		}
	}
	return deleted, nil
}
