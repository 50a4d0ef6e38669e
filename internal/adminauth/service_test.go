package adminauth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/shared/auth"
)

func newTestService(t *testing.T) (*Service, *portfolio.Service) {
	t.Helper()
	pSvc := portfolio.NewService(portfolio.NewMemoryRepo())
	return NewService(pSvc), pSvc
}

func seedEmail(t *testing.T, pSvc *portfolio.Service) string {
	t.Helper()
	email := pSvc.GetData(context.Background(), portfolio.LangEN).PersonalInfo.Email
	if email == "" {
		t.Fatalf("seed has no owner email")
	}
	return email
}

func TestLoginWithFallbackPassword(t *testing.T) {
	svc, pSvc := newTestService(t)
	email := seedEmail(t, pSvc)

	token, err := svc.Login(context.Background(), email, portfolio.FallbackAdminPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := auth.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Email != email {
		t.Fatalf("claims email = %q", claims.Email)
	}
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	svc, pSvc := newTestService(t)
	email := seedEmail(t, pSvc)

	if _, err := svc.Login(context.Background(), strings.ToUpper(email), portfolio.FallbackAdminPassword); err != nil {
		t.Fatalf("login with upper-cased email: %v", err)
	}
}

func TestLoginUsesStoredPasswordWhenSet(t *testing.T) {
	svc, pSvc := newTestService(t)
	ctx := context.Background()
	email := seedEmail(t, pSvc)

	doc := pSvc.GetData(ctx, portfolio.LangEN)
	doc.AdminConfig.Password = "rotated"
	if err := pSvc.SaveData(ctx, portfolio.LangEN, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := svc.Login(ctx, email, "rotated"); err != nil {
		t.Fatalf("login with stored password: %v", err)
	}
	if _, err := svc.Login(ctx, email, portfolio.FallbackAdminPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("fallback password accepted after rotation: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, pSvc := newTestService(t)
	ctx := context.Background()
	email := seedEmail(t, pSvc)

	if _, err := svc.Login(ctx, "nobody@example.com", portfolio.FallbackAdminPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: %v", err)
	}
	if _, err := svc.Login(ctx, email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
}
