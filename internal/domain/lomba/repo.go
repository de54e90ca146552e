package lomba

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const ColLomba = "Lomba"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) Get(ctx context.Context, id string) (*Lomba, error) {
	doc, err := r.fs.Collection(ColLomba).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: lomba not found", ErrNotFound)
	}
	var l Lomba
	if err := doc.DataTo(&l); err != nil {
		return nil, fmt.Errorf("failed to decode lomba: %w", err)
	}
	l.ID = doc.Ref.ID
	return &l, nil
}

func (r *Repo) List(ctx context.Context, limit int) ([]Lomba, error) {
	it := r.fs.Collection(ColLomba).Limit(limit).Documents(ctx)

	var out []Lomba
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list lomba: %w", err)
		}
		var l Lomba
		if err := doc.DataTo(&l); err != nil {
			log.Printf("[lomba] skipping undecodable lomba %s: %v", doc.Ref.ID, err)
			continue
		}
		l.ID = doc.Ref.ID
		out = append(out, l)
	}
	return out, nil
}

func (r *Repo) Create(ctx context.Context, l Lomba) (*Lomba, error) {
	ref := r.fs.Collection(ColLomba).NewDoc()
	if _, err := ref.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to create lomba: %w", err)
	}
	l.ID = ref.ID
	return &l, nil
}

func (r *Repo) Update(ctx context.Context, id string, updates map[string]any) (*Lomba, error) {
	if _, err := r.fs.Collection(ColLomba).Doc(id).Set(ctx, updates, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to update lomba: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.fs.Collection(ColLomba).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete lomba: %w", err)
	}
	return nil
}
