package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HanzCode/PERISAIAPP-sub000/internal/config"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/chat"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/identity"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/lomba"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/media"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/mentor"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/mentorship"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/notify"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/profile"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/firebase"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/handlers"
	apihttp "github.com/HanzCode/PERISAIAPP-sub000/internal/http"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase init failed: %v", err)
	}
	defer clients.Close()

	if clients.Messaging == nil {
		log.Println("FCM messaging client unavailable, push notifications disabled")
	}

	// Repositories
	mentorRepo := mentor.NewRepo(clients.Firestore)
	lombaRepo := lomba.NewRepo(clients.Firestore)
	requestRepo := mentorship.NewRepo(clients.Firestore)
	chatRepo := chat.NewRepo(clients.Firestore)

	// Services
	identitySvc := identity.NewService(clients.Firestore)
	mentorSvc := mentor.NewService(mentorRepo)
	lombaSvc := lomba.NewService(lombaRepo)
	mentorshipSvc := mentorship.NewService(requestRepo)
	notifySvc := notify.NewService(clients.Firestore, clients.Messaging)
	chatSvc := chat.NewService(chatRepo)
	chatSvc.SetNotifier(notifySvc)
	profileSvc := profile.NewService(clients.Firestore, clients.Auth, mentorRepo, requestRepo)

	uploader := media.NewUploader(cfg.MediaUploadURL, cfg.MediaUploadPreset)
	if !uploader.Configured() {
		log.Println("MEDIA_UPLOAD_URL not set, image upload proxy disabled")
	}
	uploads := handlers.NewUploads(cfg, clients, uploader)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:           cfg,
		AuthClient:    clients.Auth,
		IdentitySvc:   identitySvc,
		ProfileSvc:    profileSvc,
		MentorSvc:     mentorSvc,
		LombaSvc:      lombaSvc,
		MentorshipSvc: mentorshipSvc,
		ChatSvc:       chatSvc,
		NotifySvc:     notifySvc,
		Uploads:       uploads,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		log.Printf("API listening on :%s (project=%s)", cfg.Port, cfg.ProjectID)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("shutting down...")
	_ = srv.Shutdown(ctxShutdown)
}
