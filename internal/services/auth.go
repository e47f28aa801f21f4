package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/content-intel-backend/internal/modules/session"
	"github.com/yungbote/content-intel-backend/internal/platform/apierr"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

type AuthConfig struct {
	Username     string
	Password     string
	PasswordHash string
	Secret       string
	FailureDelay time.Duration
	SessionTTL   time.Duration
	CookieSecure bool
}

type AuthService interface {
	// Login checks the shared credential pair and returns a signed cookie value.
	Login(ctx context.Context, username, password string) (string, error)
	Verify(cookieValue string) bool
	SessionTTL() time.Duration
	CookieSecure() bool
}

type authService struct {
	log          *logger.Logger
	signer       *session.Signer
	username     []byte
	passwordHash []byte
	failureDelay time.Duration
	ttl          time.Duration
	secure       bool
}

func NewAuthService(log *logger.Logger, cfg AuthConfig) (AuthService, error) {
	serviceLog := log.With("service", "AuthService")

	signer, err := session.NewSigner(cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	username := strings.TrimSpace(cfg.Username)
	if username == "" {
		return nil, errors.New("auth: username not configured")
	}

	var hash []byte
	switch {
	case strings.TrimSpace(cfg.PasswordHash) != "":
		hash = []byte(strings.TrimSpace(cfg.PasswordHash))
		if _, err := bcrypt.Cost(hash); err != nil {
			return nil, fmt.Errorf("auth: password hash: %w", err)
		}
	case cfg.Password != "":
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("auth: hash password: %w", err)
		}
	default:
		return nil, errors.New("auth: password not configured")
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &authService{
		log:          serviceLog,
		signer:       signer,
		username:     []byte(username),
		passwordHash: hash,
		failureDelay: cfg.FailureDelay,
		ttl:          ttl,
		secure:       cfg.CookieSecure,
	}, nil
}

func (as *authService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", apierr.BadRequest("missing_credentials", "Username and password are required")
	}

	// Both comparisons always run.
	userOK := subtle.ConstantTimeCompare([]byte(username), as.username) == 1
	passOK := bcrypt.CompareHashAndPassword(as.passwordHash, []byte(password)) == nil
	if !userOK || !passOK {
		as.log.Warn("login rejected")
		if err := as.wait(ctx); err != nil {
			return "", err
		}
		return "", apierr.Unauthorized("Invalid username or password")
	}

	value, err := as.signer.Issue()
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	as.log.Info("login accepted")
	return value, nil
}

func (as *authService) wait(ctx context.Context) error {
	if as.failureDelay <= 0 {
		return nil
	}
	t := time.NewTimer(as.failureDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (as *authService) Verify(cookieValue string) bool {
	return as.signer.Verify(cookieValue)
}

func (as *authService) SessionTTL() time.Duration { return as.ttl }

func (as *authService) CookieSecure() bool { return as.secure }
