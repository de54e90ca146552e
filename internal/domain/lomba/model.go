package lomba

import (
	"strings"

	"github.com/HanzCode/PERISAIAPP-sub000/internal/utils"
)

// Lomba is a competition/event listing. Pure catalog entity, admin-managed.
type Lomba struct {
	ID            string `firestore:"-" json:"id"`
	NamaLomba     string `firestore:"namaLomba" json:"namaLomba"`
	Penyelenggara string `firestore:"penyelenggara" json:"penyelenggara"`
	Deskripsi     string `firestore:"deskripsi,omitempty" json:"deskripsi,omitempty"`
	ImageURL      string `firestore:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Pendaftaran   string `firestore:"pendaftaran,omitempty" json:"pendaftaran,omitempty"`
	Pelaksanaan   string `firestore:"pelaksanaan,omitempty" json:"pelaksanaan,omitempty"`
	LinkInfo      string `firestore:"linkInfo,omitempty" json:"linkInfo,omitempty"`
}

type CreateLombaInput struct {
	NamaLomba     string `json:"namaLomba"`
	Penyelenggara string `json:"penyelenggara"`
	Deskripsi     string `json:"deskripsi,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
	Pendaftaran   string `json:"pendaftaran,omitempty"`
	Pelaksanaan   string `json:"pelaksanaan,omitempty"`
	LinkInfo      string `json:"linkInfo,omitempty"`
}

func (in *CreateLombaInput) Trim() {
	in.NamaLomba = strings.TrimSpace(in.NamaLomba)
	in.Penyelenggara = strings.TrimSpace(in.Penyelenggara)
	in.Deskripsi = strings.TrimSpace(in.Deskripsi)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Pendaftaran = strings.TrimSpace(in.Pendaftaran)
	in.Pelaksanaan = strings.TrimSpace(in.Pelaksanaan)
	in.LinkInfo = strings.TrimSpace(in.LinkInfo)
}

type UpdateLombaInput struct {
	NamaLomba     *string `json:"namaLomba,omitempty"`
	Penyelenggara *string `json:"penyelenggara,omitempty"`
	Deskripsi     *string `json:"deskripsi,omitempty"`
	ImageURL      *string `json:"imageUrl,omitempty"`
	Pendaftaran   *string `json:"pendaftaran,omitempty"`
	Pelaksanaan   *string `json:"pelaksanaan,omitempty"`
	LinkInfo      *string `json:"linkInfo,omitempty"`
}

func matchQuery(l Lomba, q string) bool {
	return utils.ContainsFold(l.NamaLomba, q) || utils.ContainsFold(l.Penyelenggara, q)
}

func filterLombas(list []Lomba, q string) []Lomba {
	if strings.TrimSpace(q) == "" {
		return list
	}
	out := make([]Lomba, 0, len(list))
	for _, l := range list {
		if matchQuery(l, q) {
			out = append(out, l)
		}
	}
	return out
}
