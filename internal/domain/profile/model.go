package profile

import (
	"strings"
	"time"

	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/identity"
)

type UserProfile struct {
	UID         string        `firestore:"-" json:"uid"`
	Email       string        `firestore:"email" json:"email"`
	DisplayName string        `firestore:"displayName" json:"displayName"`
	PhotoURL    string        `firestore:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Role        identity.Role `firestore:"role" json:"role"`
	FCMToken    string        `firestore:"fcmToken,omitempty" json:"-"`
	CreatedAt   time.Time     `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `firestore:"updatedAt" json:"updatedAt"`
}

type UpsertProfileInput struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}

func (in *UpsertProfileInput) Trim() {
	in.Email = strings.TrimSpace(in.Email)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.PhotoURL = strings.TrimSpace(in.PhotoURL)
}

type UpdateProfileInput struct {
	DisplayName *string `json:"displayName,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
}

func (in *UpdateProfileInput) Trim() {
	if in.DisplayName != nil {
		*in.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.PhotoURL != nil {
		*in.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
}
