package service

import (
	"context"
	"testing"
	"time"

	"github.com/picshare/picshare-go/internal/model"
	"github.com/picshare/picshare-go/internal/repository"
)

func newTestAuthService() *AuthService {
	return NewAuthService(
		repository.NewUserRepository(nil),
		"test-secret",
		time.Hour,
	)
}

func TestRegister_EmptyEmail(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Register(context.Background(), model.CreateUserRequest{
		Email:    "",
		Username: "alice",
		Password: "password123",
	})

	if err != ErrEmailRequired {
		t.Errorf("expected ErrEmailRequired, got %v", err)
	}
}

func TestRegister_EmptyUsername(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Register(context.Background(), model.CreateUserRequest{
		Email:    "alice@example.com",
		Username: "   ",
		Password: "password123",
	})

	if err != ErrUsernameRequired {
		t.Errorf("expected ErrUsernameRequired, got %v", err)
	}
}

func TestRegister_EmptyPassword(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Register(context.Background(), model.CreateUserRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "",
	})

	if err != ErrPasswordRequired {
		t.Errorf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestRegister_WhitespaceEmailRejected(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Register(context.Background(), model.CreateUserRequest{
		Email:    "   ",
		Username: "alice",
		Password: "password123",
	})

	if err != ErrEmailRequired {
		t.Errorf("expected ErrEmailRequired, got %v", err)
	}
}
