// File: cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"onboarding_backend/internal/auth"
	"onboarding_backend/internal/config"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "issue-dev-token" {
		if err := issueDevToken(os.Args[2:]); err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		return
	}

	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}

// issueDevToken prints a token accepted by the JWT identity provider. Only meaningful with
// AUTH_PROVIDER=jwt.
func issueDevToken(args []string) error {
	fs := flag.NewFlagSet("issue-dev-token", flag.ExitOnError)
	sub := fs.String("sub", "", "Identity id (token subject)")
	email := fs.String("email", "", "Email claim")
	name := fs.String("name", "", "Display name, split into given and family name")
	ttl := fs.Duration("ttl", time.Hour, "Token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if !strings.EqualFold(cfg.AuthProvider, config.AuthProviderJWT) {
		return fmt.Errorf("issue-dev-token requires AUTH_PROVIDER=%s", config.AuthProviderJWT)
	}

	first, last, _ := strings.Cut(strings.TrimSpace(*name), " ")
	token, err := auth.NewJWTProvider(cfg.JWTSecret, cfg.JWTIssuer).Issue(auth.Identity{
		ID:        *sub,
		Email:     *email,
		FirstName: first,
		LastName:  strings.TrimSpace(last),
	}, *ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
