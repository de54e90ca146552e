package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/go-chi/chi/v5"

	"github.com/HanzCode/PERISAIAPP-sub000/internal/config"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/chat"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/identity"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/lomba"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/mentor"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/mentorship"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/notify"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/profile"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/handlers"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/middleware"
)

type RouterDeps struct {
	Cfg           config.Config
	AuthClient    *auth.Client
	IdentitySvc   *identity.Service
	ProfileSvc    *profile.Service
	MentorSvc     *mentor.Service
	LombaSvc      *lomba.Service
	MentorshipSvc *mentorship.Service
	ChatSvc       *chat.Service
	NotifySvc     *notify.Service
	Uploads       *handlers.Uploads
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(d.Cfg.AllowedOrigins))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	// Protected routes
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.WithAuth(d.AuthClient))

		// ===== Identity =====
		pr.Get("/v1/me", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			res, err := d.IdentitySvc.Resolve(r.Context(), au.UID)
			if err != nil {
				// Role resolution failed: report the unknown role rather
				// than guessing a privileged one.
				WriteJSON(w, 200, map[string]any{
					"uid":   au.UID,
					"email": au.Email,
					"role":  identity.RoleUnknown,
				})
				return
			}
			WriteJSON(w, 200, res)
		})

		// ===== Push token registration =====
		pr.Post("/v1/auth/register-token", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in notify.RegisterTokenInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			role := middleware.ClaimRole(au.Claims)
			if role == identity.RoleUnknown {
				if res, err := d.IdentitySvc.Resolve(r.Context(), au.UID); err == nil {
					role = res.Role
				}
			}

			if err := d.NotifySvc.RegisterToken(r.Context(), au.UID, role, in); err != nil {
				status, msg := mapNotifyError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})

		// ===== Profile =====
		pr.Get("/v1/profile", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			targetUID := r.URL.Query().Get("uid")
			if targetUID == "" {
				targetUID = au.UID
			}
			if targetUID != au.UID && !middleware.IsAdmin(au.Claims) {
				Fail(w, 403, "permission denied")
				return
			}

			out, err := d.ProfileSvc.Get(r.Context(), targetUID)
			if err != nil {
				status, msg := mapProfileError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/profile", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in profile.UpsertProfileInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
			if in.Email == "" {
				in.Email = au.Email
			}

			out, err := d.ProfileSvc.Upsert(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapProfileError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Put("/v1/profile", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in profile.UpdateProfileInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			if err := d.ProfileSvc.Update(r.Context(), au.UID, in); err != nil {
				status, msg := mapProfileError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})

		// ===== Mentor catalog =====
		pr.Get("/v1/mentors", func(w http.ResponseWriter, r *http.Request) {
			in := mentor.ListMentorsInput{
				Query:         strings.TrimSpace(r.URL.Query().Get("q")),
				AvailableOnly: r.URL.Query().Get("availableOnly") == "true",
			}
			if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
				if l, err := strconv.Atoi(limitStr); err == nil {
					in.Limit = l
				}
			}

			out, err := d.MentorSvc.List(r.Context(), in)
			if err != nil {
				status, msg := mapMentorError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"mentors": out})
		})

		pr.Get("/v1/mentors/me", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			out, err := d.MentorSvc.GetByUserID(r.Context(), au.UID)
			if err != nil {
				status, msg := mapMentorError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/mentors/{mentorId}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.MentorSvc.Get(r.Context(), chi.URLParam(r, "mentorId"))
			if err != nil {
				status, msg := mapMentorError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/mentors", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !middleware.IsAdmin(au.Claims) {
				Fail(w, 403, "admin privileges required")
				return
			}

			var in mentor.CreateMentorInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.MentorSvc.Create(r.Context(), in)
			if err != nil {
				status, msg := mapMentorError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Put("/v1/mentors/{mentorId}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			mentorID := chi.URLParam(r, "mentorId")

			// Mentors may edit their own record; everyone else needs admin.
			if !middleware.IsAdmin(au.Claims) {
				own, err := d.MentorSvc.Get(r.Context(), mentorID)
				if err != nil || own.UserID != au.UID {
					Fail(w, 403, "permission denied")
					return
				}
			}

			var in mentor.UpdateMentorInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.MentorSvc.Update(r.Context(), mentorID, in)
			if err != nil {
				status, msg := mapMentorError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Delete("/v1/mentors/{mentorId}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !middleware.IsAdmin(au.Claims) {
				Fail(w, 403, "admin privileges required")
				return
			}

			mentorID := chi.URLParam(r, "mentorId")
			if err := d.MentorSvc.Delete(r.Context(), mentorID); err != nil {
				status, msg := mapMentorError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true, "deleted": mentorID})
		})

		// ===== Lomba catalog =====
		pr.Get("/v1/lomba", func(w http.ResponseWriter, r *http.Request) {
			q := strings.TrimSpace(r.URL.Query().Get("q"))
			limit := 0
			if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
				if l, err := strconv.Atoi(limitStr); err == nil {
					limit = l
				}
			}

			out, err := d.LombaSvc.List(r.Context(), q, limit)
			if err != nil {
				status, msg := mapLombaError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"lomba": out})
		})

		pr.Get("/v1/lomba/{lombaId}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.LombaSvc.Get(r.Context(), chi.URLParam(r, "lombaId"))
			if err != nil {
				status, msg := mapLombaError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/lomba", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !middleware.IsAdmin(au.Claims) {
				Fail(w, 403, "admin privileges required")
				return
			}

			var in lomba.CreateLombaInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.LombaSvc.Create(r.Context(), in)
			if err != nil {
				status, msg := mapLombaError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Put("/v1/lomba/{lombaId}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !middleware.IsAdmin(au.Claims) {
				Fail(w, 403, "admin privileges required")
				return
			}

			var in lomba.UpdateLombaInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.LombaSvc.Update(r.Context(), chi.URLParam(r, "lombaId"), in)
			if err != nil {
				status, msg := mapLombaError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Delete("/v1/lomba/{lombaId}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !middleware.IsAdmin(au.Claims) {
				Fail(w, 403, "admin privileges required")
				return
			}

			lombaID := chi.URLParam(r, "lombaId")
			if err := d.LombaSvc.Delete(r.Context(), lombaID); err != nil {
				status, msg := mapLombaError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true, "deleted": lombaID})
		})

		// ===== Mentorship requests =====
		pr.Post("/v1/requests", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in mentorship.CreateRequestInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			// Snapshot the mentee's card fields so the mentor's inbox can
			// render without a second profile read.
			if in.MenteeName == "" || in.MenteePhotoURL == "" {
				if res, err := d.IdentitySvc.Resolve(r.Context(), au.UID); err == nil {
					if in.MenteeName == "" {
						in.MenteeName = res.DisplayName
					}
					if in.MenteePhotoURL == "" {
						in.MenteePhotoURL = res.PhotoURL
					}
				}
			}

			out, err := d.MentorshipSvc.CreateRequest(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapMentorshipError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/requests", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			limit := 0
			if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
				if l, err := strconv.Atoi(limitStr); err == nil {
					limit = l
				}
			}

			var (
				out []mentorship.Request
				err error
			)
			if r.URL.Query().Get("as") == "mentor" {
				out, err = d.MentorshipSvc.ListForMentor(r.Context(), au.UID, limit)
			} else {
				out, err = d.MentorshipSvc.ListForMentee(r.Context(), au.UID, limit)
			}
			if err != nil {
				status, msg := mapMentorshipError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"requests": out})
		})

		pr.Post("/v1/requests/{requestId}/accept", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			out, err := d.MentorshipSvc.Accept(r.Context(), au.UID, chi.URLParam(r, "requestId"))
			if err != nil {
				status, msg := mapMentorshipError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/requests/{requestId}/decline", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			out, err := d.MentorshipSvc.Decline(r.Context(), au.UID, chi.URLParam(r, "requestId"))
			if err != nil {
				status, msg := mapMentorshipError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Chat =====
		pr.Get("/v1/chats", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			limit := 0
			if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
				if l, err := strconv.Atoi(limitStr); err == nil {
					limit = l
				}
			}

			out, err := d.ChatSvc.ListRooms(r.Context(), au.UID, limit)
			if err != nil {
				status, msg := mapChatError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"chats": out})
		})

		pr.Post("/v1/chats/group", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in chat.CreateGroupInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			creatorName := au.Email
			if res, err := d.IdentitySvc.Resolve(r.Context(), au.UID); err == nil && res.DisplayName != "" {
				creatorName = res.DisplayName
			}

			out, err := d.ChatSvc.CreateGroup(r.Context(), au.UID, creatorName, in)
			if err != nil {
				status, msg := mapChatError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/chats/{chatId}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			out, err := d.ChatSvc.GetRoom(r.Context(), au.UID, chi.URLParam(r, "chatId"))
			if err != nil {
				status, msg := mapChatError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/chats/{chatId}/participants", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in chat.AddParticipantsInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.ChatSvc.AddParticipants(r.Context(), au.UID, chi.URLParam(r, "chatId"), in.UserIDs)
			if err != nil {
				status, msg := mapChatError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/chats/{chatId}/messages", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			limit := 0
			if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
				if l, err := strconv.Atoi(limitStr); err == nil {
					limit = l
				}
			}

			out, err := d.ChatSvc.ListMessages(r.Context(), au.UID, chi.URLParam(r, "chatId"), limit)
			if err != nil {
				status, msg := mapChatError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"messages": out})
		})

		pr.Post("/v1/chats/{chatId}/messages", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in chat.SendMessageInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.ChatSvc.SendMessage(r.Context(), au.UID, chi.URLParam(r, "chatId"), in)
			if err != nil {
				status, msg := mapChatError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Post("/v1/chats/{chatId}/markRead", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			count, err := d.ChatSvc.MarkRead(r.Context(), au.UID, chi.URLParam(r, "chatId"))
			if err != nil {
				status, msg := mapChatError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true, "marked": count})
		})

		// ===== Uploads =====
		if d.Uploads != nil {
			pr.Post("/v1/uploads/signed-url", d.Uploads.CreateSignedUploadURL)
			pr.Post("/v1/uploads/image", d.Uploads.UploadImage)
		}

		// ===== Admin =====
		pr.Post("/v1/admin/setRole", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !middleware.IsAdmin(au.Claims) {
				Fail(w, 403, "admin privileges required")
				return
			}

			var body struct {
				UserID string `json:"userId"`
				Role   string `json:"role"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			if err := d.ProfileSvc.SetRole(r.Context(), body.UserID, identity.ParseRole(body.Role)); err != nil {
				status, msg := mapProfileError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})

		pr.Post("/v1/admin/requests/{requestId}/complete", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !middleware.IsAdmin(au.Claims) {
				Fail(w, 403, "admin privileges required")
				return
			}

			out, err := d.MentorshipSvc.Complete(r.Context(), chi.URLParam(r, "requestId"))
			if err != nil {
				status, msg := mapMentorshipError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/admin/deactivateUser", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !middleware.IsAdmin(au.Claims) {
				Fail(w, 403, "admin privileges required")
				return
			}

			var body struct {
				UserID string `json:"userId"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			if err := d.ProfileSvc.Deactivate(r.Context(), au.UID, body.UserID); err != nil {
				status, msg := mapProfileError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})

		pr.Post("/v1/admin/reactivateUser", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !middleware.IsAdmin(au.Claims) {
				Fail(w, 403, "admin privileges required")
				return
			}

			var body struct {
				UserID string `json:"userId"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			if err := d.ProfileSvc.Reactivate(r.Context(), body.UserID); err != nil {
				status, msg := mapProfileError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})

		pr.Post("/v1/admin/deleteUser", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !middleware.IsAdmin(au.Claims) {
				Fail(w, 403, "admin privileges required")
				return
			}

			var body struct {
				UserID string `json:"userId"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			if err := d.ProfileSvc.Delete(r.Context(), au.UID, body.UserID); err != nil {
				status, msg := mapProfileError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true, "deleted": body.UserID})
		})
	})

	return r
}

func mapProfileError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case profile.IsErrUnauthorized(err):
		return 403, err.Error()
	case profile.IsErrNotFound(err):
		return 404, err.Error()
	case profile.IsErrBadRequest(err),
		errors.Is(err, profile.ErrCannotDeleteSelf),
		errors.Is(err, profile.ErrCannotDeactivateSelf):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapMentorError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case mentor.IsErrUnauthorized(err):
		return 403, err.Error()
	case mentor.IsErrNotFound(err):
		return 404, err.Error()
	case mentor.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapLombaError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case lomba.IsErrNotFound(err):
		return 404, err.Error()
	case lomba.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapMentorshipError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case mentorship.IsErrUnauthorized(err):
		return 403, err.Error()
	case mentorship.IsErrNotFound(err):
		return 404, err.Error()
	case mentorship.IsErrInvalidTransition(err):
		return 409, err.Error()
	case mentorship.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapChatError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case chat.IsErrUnauthorized(err):
		return 403, err.Error()
	case chat.IsErrNotFound(err):
		return 404, err.Error()
	case chat.IsErrValidation(err), chat.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapNotifyError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	if notify.IsErrBadRequest(err) {
		return 400, err.Error()
	}
	return 500, err.Error()
}
