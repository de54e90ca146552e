package profile

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"

	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/identity"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/mentor"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/mentorship"
)

type Service struct {
	client     *firestore.Client
	authClient *auth.Client
	mentorRepo *mentor.Repo
	reqRepo    *mentorship.Repo
}

func NewService(client *firestore.Client, authClient *auth.Client, mentorRepo *mentor.Repo, reqRepo *mentorship.Repo) *Service {
	return &Service{client: client, authClient: authClient, mentorRepo: mentorRepo, reqRepo: reqRepo}
}

func (s *Service) Get(ctx context.Context, uid string) (*UserProfile, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}

	doc, err := s.client.Collection("users").Doc(uid).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	var p UserProfile
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	p.UID = uid
	p.Role = identity.ParseRole(string(p.Role))

	return &p, nil
}

// Upsert bootstraps the profile record at signup. New accounts always get
// the unprivileged user role; role mutation is an admin action.
func (s *Service) Upsert(ctx context.Context, uid string, in UpsertProfileInput) (*UserProfile, error) {
	in.Trim()
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}
	if in.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrBadRequest)
	}

	now := time.Now().UTC()
	ref := s.client.Collection("users").Doc(uid)

	doc, err := ref.Get(ctx)
	if err != nil || !doc.Exists() {
		// First sign-in: create the full document. Role starts at user and
		// is never touched again from this path.
		_, err = ref.Create(ctx, map[string]any{
			"email":       in.Email,
			"displayName": in.DisplayName,
			"photoUrl":    in.PhotoURL,
			"role":        string(identity.RoleUser),
			"createdAt":   now,
			"updatedAt":   now,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		return s.Get(ctx, uid)
	}

	_, err = ref.Set(ctx, map[string]any{
		"email":       in.Email,
		"displayName": in.DisplayName,
		"photoUrl":    in.PhotoURL,
		"updatedAt":   now,
	}, firestore.MergeAll)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	return s.Get(ctx, uid)
}

// Update changes the caller-editable fields and best-effort syncs them to
// the auth user record.
func (s *Service) Update(ctx context.Context, uid string, in UpdateProfileInput) error {
	if uid == "" {
		return fmt.Errorf("%w: uid is required", ErrBadRequest)
	}
	in.Trim()

	updates := map[string]any{
		"updatedAt": time.Now().UTC(),
	}
	if in.DisplayName != nil {
		if *in.DisplayName == "" {
			return fmt.Errorf("%w: displayName cannot be empty", ErrBadRequest)
		}
		updates["displayName"] = *in.DisplayName
	}
	if in.PhotoURL != nil {
		updates["photoUrl"] = *in.PhotoURL
	}

	_, err := s.client.Collection("users").Doc(uid).Set(ctx, updates, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if in.DisplayName != nil || in.PhotoURL != nil {
		authUpdate := &auth.UserToUpdate{}
		if in.DisplayName != nil {
			authUpdate.DisplayName(*in.DisplayName)
		}
		if in.PhotoURL != nil && *in.PhotoURL != "" {
			authUpdate.PhotoURL(*in.PhotoURL)
		}
		if _, err := s.authClient.UpdateUser(ctx, uid, authUpdate); err != nil {
			log.Printf("[profile] auth user sync for %s failed: %v", uid, err)
		}
	}

	return nil
}

// SetRole is the admin action that mutates a profile's role, mirrored into
// the auth custom claims so middleware checks see it on the next token.
func (s *Service) SetRole(ctx context.Context, targetUID string, role identity.Role) error {
	if targetUID == "" {
		return fmt.Errorf("%w: userId is required", ErrBadRequest)
	}
	if role == identity.RoleUnknown {
		return fmt.Errorf("%w: role must be admin, mentor or user", ErrBadRequest)
	}

	_, err := s.client.Collection("users").Doc(targetUID).Set(ctx, map[string]any{
		"role":      string(role),
		"updatedAt": time.Now().UTC(),
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}

	if err := s.authClient.SetCustomUserClaims(ctx, targetUID, map[string]any{
		"role": string(role),
	}); err != nil {
		log.Printf("[profile] claim sync for %s failed: %v", targetUID, err)
	}

	return nil
}

// Delete removes the profile record, then best-effort deletes the companion
// records (Mentor doc, mentorship requests) and the auth user. The cascade
// is intentionally not atomic; companion failures are logged, not surfaced.
func (s *Service) Delete(ctx context.Context, callerUID, targetUID string) error {
	if targetUID == "" {
		return fmt.Errorf("%w: userId is required", ErrBadRequest)
	}
	if callerUID == targetUID {
		return ErrCannotDeleteSelf
	}

	if _, err := s.client.Collection("users").Doc(targetUID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	if m, err := s.mentorRepo.GetByUserID(ctx, targetUID); err == nil {
		if err := s.mentorRepo.Delete(ctx, m.ID); err != nil {
			log.Printf("[profile] mentor cleanup for %s failed: %v", targetUID, err)
		}
	}
	if n, err := s.reqRepo.DeleteForUser(ctx, targetUID); err != nil {
		log.Printf("[profile] request cleanup for %s failed after %d deletes: %v", targetUID, n, err)
	}
	if err := s.authClient.DeleteUser(ctx, targetUID); err != nil {
		log.Printf("[profile] auth user delete for %s failed: %v", targetUID, err)
	}

	return nil
}

// Deactivate disables the auth account and flags the profile (admin only).
func (s *Service) Deactivate(ctx context.Context, callerUID, targetUID string) error {
	if targetUID == "" {
		return fmt.Errorf("%w: userId is required", ErrBadRequest)
	}
	if callerUID == targetUID {
		return ErrCannotDeactivateSelf
	}

	authUpdate := &auth.UserToUpdate{}
	authUpdate.Disabled(true)
	if _, err := s.authClient.UpdateUser(ctx, targetUID, authUpdate); err != nil {
		return fmt.Errorf("failed to disable user: %w", err)
	}

	now := time.Now().UTC()
	_, err := s.client.Collection("users").Doc(targetUID).Set(ctx, map[string]any{
		"isActive":      false,
		"deactivatedAt": now,
		"deactivatedBy": callerUID,
		"updatedAt":     now,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// Reactivate re-enables a deactivated account (admin only).
func (s *Service) Reactivate(ctx context.Context, targetUID string) error {
	if targetUID == "" {
		return fmt.Errorf("%w: userId is required", ErrBadRequest)
	}

	authUpdate := &auth.UserToUpdate{}
	authUpdate.Disabled(false)
	if _, err := s.authClient.UpdateUser(ctx, targetUID, authUpdate); err != nil {
		return fmt.Errorf("failed to enable user: %w", err)
	}

	now := time.Now().UTC()
	_, err := s.client.Collection("users").Doc(targetUID).Set(ctx, map[string]any{
		"isActive":      true,
		"reactivatedAt": now,
		"updatedAt":     now,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}
