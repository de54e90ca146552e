package mentor

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const ColMentors = "Mentor"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

// docToMentor decodes a mentor document. Older documents carry the
// availability flag under bersediaKah; those are honored on read but only
// isAvailable is ever written, so the field converges on writes.
func docToMentor(doc *firestore.DocumentSnapshot) (Mentor, error) {
	var m Mentor
	if err := doc.DataTo(&m); err != nil {
		return Mentor{}, err
	}
	m.ID = doc.Ref.ID

	data := doc.Data()
	if _, ok := data["isAvailable"]; !ok {
		if legacy, ok := data["bersediaKah"].(bool); ok {
			m.IsAvailable = legacy
		}
	}
	return m, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Mentor, error) {
	doc, err := r.fs.Collection(ColMentors).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: mentor not found", ErrNotFound)
	}
	m, err := docToMentor(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mentor: %w", err)
	}
	return &m, nil
}

func (r *Repo) GetByUserID(ctx context.Context, userID string) (*Mentor, error) {
	it := r.fs.Collection(ColMentors).Where("userId", "==", userID).Limit(1).Documents(ctx)
	doc, err := it.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("%w: mentor not found", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up mentor: %w", err)
	}
	m, err := docToMentor(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mentor: %w", err)
	}
	return &m, nil
}

func (r *Repo) List(ctx context.Context, availableOnly bool, limit int) ([]Mentor, error) {
	q := r.fs.Collection(ColMentors).Query
	if availableOnly {
		q = q.Where("isAvailable", "==", true)
	}
	it := q.Limit(limit).Documents(ctx)

	var out []Mentor
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list mentors: %w", err)
		}
		m, err := docToMentor(doc)
		if err != nil {
			log.Printf("[mentor] skipping undecodable mentor %s: %v", doc.Ref.ID, err)
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Repo) Create(ctx context.Context, m Mentor) (*Mentor, error) {
	ref := r.fs.Collection(ColMentors).NewDoc()
	if _, err := ref.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create mentor: %w", err)
	}
	m.ID = ref.ID
	return &m, nil
}

func (r *Repo) Update(ctx context.Context, id string, updates map[string]any) (*Mentor, error) {
	if _, err := r.fs.Collection(ColMentors).Doc(id).Set(ctx, updates, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to update mentor: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.fs.Collection(ColMentors).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete mentor: %w", err)
	}
	return nil
}
