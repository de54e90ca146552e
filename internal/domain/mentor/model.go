package mentor

import (
	"strings"

	"github.com/HanzCode/PERISAIAPP-sub000/internal/utils"
)

// Mentor is the catalog record shown to mentees. Availability lives in the
// canonical isAvailable field; the legacy bersediaKah field from older
// documents is read once on decode and not written back.
type Mentor struct {
	ID           string   `firestore:"-" json:"id"`
	UserID       string   `firestore:"userId" json:"userId"`
	Name         string   `firestore:"name" json:"name"`
	Peminatan    string   `firestore:"peminatan" json:"peminatan"`
	Description  string   `firestore:"description,omitempty" json:"description,omitempty"`
	PhotoURL     string   `firestore:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	IsAvailable  bool     `firestore:"isAvailable" json:"isAvailable"`
	Achievements []string `firestore:"achievements,omitempty" json:"achievements,omitempty"`
}

type CreateMentorInput struct {
	UserID       string   `json:"userId"`
	Name         string   `json:"name"`
	Peminatan    string   `json:"peminatan"`
	Description  string   `json:"description,omitempty"`
	PhotoURL     string   `json:"photoUrl,omitempty"`
	IsAvailable  bool     `json:"isAvailable"`
	Achievements []string `json:"achievements,omitempty"`
}

func (in *CreateMentorInput) Trim() {
	in.UserID = strings.TrimSpace(in.UserID)
	in.Name = strings.TrimSpace(in.Name)
	in.Peminatan = strings.TrimSpace(in.Peminatan)
	in.Description = strings.TrimSpace(in.Description)
	in.PhotoURL = strings.TrimSpace(in.PhotoURL)
}

type UpdateMentorInput struct {
	Name         *string   `json:"name,omitempty"`
	Peminatan    *string   `json:"peminatan,omitempty"`
	Description  *string   `json:"description,omitempty"`
	PhotoURL     *string   `json:"photoUrl,omitempty"`
	IsAvailable  *bool     `json:"isAvailable,omitempty"`
	Achievements *[]string `json:"achievements,omitempty"`
}

func (in *UpdateMentorInput) Trim() {
	if in.Name != nil {
		*in.Name = strings.TrimSpace(*in.Name)
	}
	if in.Peminatan != nil {
		*in.Peminatan = strings.TrimSpace(*in.Peminatan)
	}
	if in.Description != nil {
		*in.Description = strings.TrimSpace(*in.Description)
	}
	if in.PhotoURL != nil {
		*in.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
}

type ListMentorsInput struct {
	Query         string
	AvailableOnly bool
	Limit         int
}

// matchQuery is the search contract: case-insensitive substring over name
// and specialty.
func matchQuery(m Mentor, q string) bool {
	return utils.ContainsFold(m.Name, q) || utils.ContainsFold(m.Peminatan, q)
}

func filterMentors(list []Mentor, q string) []Mentor {
	if strings.TrimSpace(q) == "" {
		return list
	}
	out := make([]Mentor, 0, len(list))
	for _, m := range list {
		if matchQuery(m, q) {
			out = append(out, m)
		}
	}
	return out
}
