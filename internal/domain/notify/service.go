package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/iterator"

	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/identity"
)

type Service struct {
	client    *firestore.Client
	messaging *messaging.Client // nil when FCM is not configured
}

func NewService(client *firestore.Client, msg *messaging.Client) *Service {
	return &Service{client: client, messaging: msg}
}

// RegisterToken refreshes the push token on users/{uid} on every sign-in.
// Mentors additionally get the token mirrored onto their Mentor record so
// mentee-facing queries can push without a second lookup. The mirror write
// is best-effort.
func (s *Service) RegisterToken(ctx context.Context, uid string, role identity.Role, in RegisterTokenInput) error {
	in.Trim()
	if uid == "" || in.Token == "" {
		return fmt.Errorf("%w: uid and token are required", ErrBadRequest)
	}

	now := time.Now().UTC()
	_, err := s.client.Collection("users").Doc(uid).Set(ctx, map[string]any{
		"fcmToken":  in.Token,
		"updatedAt": now,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to register token: %w", err)
	}

	if role == identity.RoleMentor {
		it := s.client.Collection("Mentor").Where("userId", "==", uid).Limit(1).Documents(ctx)
		doc, err := it.Next()
		if err == nil {
			if _, err := doc.Ref.Set(ctx, map[string]any{
				"fcmToken":  in.Token,
				"updatedAt": now,
			}, firestore.MergeAll); err != nil {
				log.Printf("[notify] mentor token mirror for %s failed: %v", uid, err)
			}
		} else if err != iterator.Done {
			log.Printf("[notify] mentor lookup for %s failed: %v", uid, err)
		}
	}

	return nil
}

// PushToUsers sends a notification with a chatId deep-link payload to each
// listed user's registered token. Users without a token are skipped and
// per-token send failures are logged, never surfaced.
func (s *Service) PushToUsers(ctx context.Context, uids []string, title, body, chatID string) error {
	if s.messaging == nil {
		return nil
	}

	for _, uid := range uids {
		doc, err := s.client.Collection("users").Doc(uid).Get(ctx)
		if err != nil {
			log.Printf("[notify] token lookup for %s failed: %v", uid, err)
			continue
		}
		token, _ := doc.Data()["fcmToken"].(string)
		if token == "" {
			continue
		}

		_, err = s.messaging.Send(ctx, &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: map[string]string{"chatId": chatID},
		})
		if err != nil {
			log.Printf("[notify] push to %s failed: %v", uid, err)
		}
	}

	return nil
}
