// File: cmd/onboard/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"onboarding_backend/internal/config"
	"onboarding_backend/internal/onboarding"
	"onboarding_backend/internal/platform/logger"
	"onboarding_backend/internal/submission"
	"onboarding_backend/internal/wizard"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	if cfg.IDToken == "" {
		log.Fatal("FATAL: ONBOARD_ID_TOKEN is required")
	}

	appLogger, err := logger.NewWithOptions(cfg.LogLevel, "console", false)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		if errors.Is(err, wizard.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nOnboarding cancelled.")
			os.Exit(1)
		}
		appLogger.Error("Onboarding failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.ClientConfig, appLogger *zap.Logger) error {
	client := submission.NewClient(cfg.APIBaseURL, cfg.IDToken, appLogger.Named("SubmissionClient"),
		submission.WithRedirect(cfg.PostOnboardingRoute),
		submission.WithStateChange(func(s submission.State) {
			appLogger.Debug("Submission state changed", zap.Stringer("state", s))
		}),
	)

	meCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	me, err := client.Me(meCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to load current user: %w", err)
	}
	if me.Onboarded {
		fmt.Printf("You are already onboarded. Continue at %s\n", cfg.PostOnboardingRoute)
		return nil
	}

	ctrl := wizard.New(wizard.Values{
		FirstName: me.Identity.FirstName,
		LastName:  me.Identity.LastName,
		Email:     me.Identity.Email,
	})
	prompter := wizard.NewPrompter(ctrl, timeoutSubmitter{client: client, timeout: cfg.Timeout}, os.Stdin, os.Stdout)
	_, err = prompter.Run(ctx)
	return err
}

// timeoutSubmitter bounds each submission by the configured request timeout.
type timeoutSubmitter struct {
	client  *submission.Client
	timeout time.Duration
}

func (s timeoutSubmitter) Submit(ctx context.Context, payload onboarding.Input) (*submission.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Submit(ctx, payload)
}
