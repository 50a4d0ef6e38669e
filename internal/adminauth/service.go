package adminauth

import (
	"context"
	"errors"
	"strings"

	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/shared/auth"
	"portfolio-backend/internal/shared/telemetry"
)

// ErrInvalidCredentials covers both unknown emails and wrong passwords so the
// response never reveals which part failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service authenticates the site owner against the effective document.
type Service struct {
	Portfolio *portfolio.Service
}

// NewService constructs a Service.
func NewService(p *portfolio.Service) *Service {
	return &Service{Portfolio: p}
}

// Login checks the given credentials against the effective English document
// and returns a signed admin token on success. The email comparison is
// case-insensitive; the password must match the stored admin password or the
// built-in fallback when none is stored.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	doc := s.Portfolio.GetData(ctx, portfolio.LangEN)

	wantEmail := strings.TrimSpace(doc.PersonalInfo.Email)
	gotEmail := strings.TrimSpace(email)
	if wantEmail == "" || !strings.EqualFold(gotEmail, wantEmail) {
		return "", ErrInvalidCredentials
	}
	if password != doc.EffectivePassword() {
		return "", ErrInvalidCredentials
	}

	token, err := auth.Sign("admin", wantEmail)
	if err != nil {
		telemetry.Error("adminauth.sign_failed", map[string]any{"error": err.Error()})
		return "", err
	}
	telemetry.Info("adminauth.login", map[string]any{"email": wantEmail})
	return token, nil
}
