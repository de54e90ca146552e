package identity

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

type Service struct {
	client *firestore.Client
}

func NewService(client *firestore.Client) *Service {
	return &Service{client: client}
}

// Resolve maps an authenticated uid to its role by reading users/{uid}.
// Any failure (missing doc, network, decode) resolves to RoleUnknown with
// the error surfaced alongside it. Fails closed, never open.
func (s *Service) Resolve(ctx context.Context, uid string) (Resolution, error) {
	res := Resolution{UID: uid, Role: RoleUnknown}
	if uid == "" {
		return res, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}

	doc, err := s.client.Collection("users").Doc(uid).Get(ctx)
	if err != nil {
		return res, fmt.Errorf("%w: user profile lookup failed", ErrNotFound)
	}

	data := doc.Data()
	if role, ok := data["role"].(string); ok {
		res.Role = ParseRole(role)
	}
	if v, ok := data["displayName"].(string); ok {
		res.DisplayName = v
	}
	if v, ok := data["email"].(string); ok {
		res.Email = v
	}
	if v, ok := data["photoUrl"].(string); ok {
		res.PhotoURL = v
	}

	return res, nil
}
