package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"

	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/identity"
)

func main() {
	uid := flag.String("uid", "", "target firebase uid")
	role := flag.String("role", "", "role to set: admin, mentor or user")
	flag.Parse()
	if *uid == "" {
		log.Fatal("uid is required: -uid=xxxxx")
	}

	parsed := identity.ParseRole(*role)
	if parsed == identity.RoleUnknown {
		log.Fatalf("invalid role %q: must be admin, mentor or user", *role)
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil)
	if err != nil {
		log.Fatalf("firebase.NewApp: %v", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("app.Auth: %v", err)
	}

	claims := map[string]interface{}{
		"role": string(parsed),
	}
	if parsed == identity.RoleAdmin {
		claims["admin"] = true
	}

	if err := authClient.SetCustomUserClaims(ctx, *uid, claims); err != nil {
		log.Fatalf("SetCustomUserClaims: %v", err)
	}

	fmt.Printf("ok: role %s set for %s\n", parsed, *uid)
}
