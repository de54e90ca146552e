package lomba

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

// List fetches the catalog and applies the substring search in memory,
// same contract as the mentor catalog.
func (s *Service) List(ctx context.Context, query string, limit int) ([]Lomba, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	list, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return filterLombas(list, query), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Lomba, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: lomba id is required", ErrBadRequest)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateLombaInput) (*Lomba, error) {
	in.Trim()
	if in.NamaLomba == "" {
		return nil, fmt.Errorf("%w: namaLomba is required", ErrBadRequest)
	}
	if in.Penyelenggara == "" {
		return nil, fmt.Errorf("%w: penyelenggara is required", ErrBadRequest)
	}

	return s.repo.Create(ctx, Lomba{
		NamaLomba:     in.NamaLomba,
		Penyelenggara: in.Penyelenggara,
		Deskripsi:     in.Deskripsi,
		ImageURL:      in.ImageURL,
		Pendaftaran:   in.Pendaftaran,
		Pelaksanaan:   in.Pelaksanaan,
		LinkInfo:      in.LinkInfo,
	})
}

func (s *Service) Update(ctx context.Context, id string, in UpdateLombaInput) (*Lomba, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: lomba id is required", ErrBadRequest)
	}

	updates := map[string]any{}
	if in.Deskripsi != nil {
		updates["deskripsi"] = *in.Deskripsi
	}
	if in.ImageURL != nil {
		updates["imageUrl"] = *in.ImageURL
	}
	if in.Pendaftaran != nil {
		updates["pendaftaran"] = *in.Pendaftaran
	}
	if in.Pelaksanaan != nil {
		updates["pelaksanaan"] = *in.Pelaksanaan
	}
	if in.LinkInfo != nil {
		updates["linkInfo"] = *in.LinkInfo
	}

	if in.NamaLomba != nil {
		if *in.NamaLomba == "" {
			return nil, fmt.Errorf("%w: namaLomba cannot be empty", ErrBadRequest)
		}
		updates["namaLomba"] = *in.NamaLomba
	}
	if in.Penyelenggara != nil {
		if *in.Penyelenggara == "" {
			return nil, fmt.Errorf("%w: penyelenggara cannot be empty", ErrBadRequest)
		}
		updates["penyelenggara"] = *in.Penyelenggara
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrBadRequest)
	}

	return s.repo.Update(ctx, id, updates)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: lomba id is required", ErrBadRequest)
	}
	return s.repo.Delete(ctx, id)
}
