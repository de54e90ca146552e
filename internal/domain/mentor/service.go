package mentor

import (
	"context"
	"fmt"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// List fetches the catalog page and applies the substring search in memory;
// Firestore has no substring operator, and the catalog is small enough that
// the fetched page is the search corpus.
func (s *Service) List(ctx context.Context, in ListMentorsInput) ([]Mentor, error) {
	limit := in.Limit
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	mentors, err := s.repo.List(ctx, in.AvailableOnly, limit)
	if err != nil {
		return nil, err
	}
	return filterMentors(mentors, in.Query), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Mentor, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: mentor id is required", ErrBadRequest)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (*Mentor, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrBadRequest)
	}
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) Create(ctx context.Context, in CreateMentorInput) (*Mentor, error) {
	in.Trim()
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrBadRequest)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrBadRequest)
	}
	if in.Peminatan == "" {
		return nil, fmt.Errorf("%w: peminatan is required", ErrBadRequest)
	}

	return s.repo.Create(ctx, Mentor{
		UserID:       in.UserID,
		Name:         in.Name,
		Peminatan:    in.Peminatan,
		Description:  in.Description,
		PhotoURL:     in.PhotoURL,
		IsAvailable:  in.IsAvailable,
		Achievements: in.Achievements,
	})
}

func (s *Service) Update(ctx context.Context, id string, in UpdateMentorInput) (*Mentor, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: mentor id is required", ErrBadRequest)
	}
	in.Trim()

	updates := map[string]any{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrBadRequest)
		}
		updates["name"] = *in.Name
	}
	if in.Peminatan != nil {
		if *in.Peminatan == "" {
			return nil, fmt.Errorf("%w: peminatan cannot be empty", ErrBadRequest)
		}
		updates["peminatan"] = *in.Peminatan
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.PhotoURL != nil {
		updates["photoUrl"] = *in.PhotoURL
	}
	if in.IsAvailable != nil {
		updates["isAvailable"] = *in.IsAvailable
	}
	if in.Achievements != nil {
		updates["achievements"] = *in.Achievements
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrBadRequest)
	}

	return s.repo.Update(ctx, id, updates)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: mentor id is required", ErrBadRequest)
	}
	return s.repo.Delete(ctx, id)
}
