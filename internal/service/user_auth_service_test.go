package service

import (
	"errors"
	"testing"
	"time"

	"github.com/market-next/internal/config"
	"github.com/market-next/internal/repository"

	"gorm.io/gorm"
)

func newAuthTestService(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.Session.SecretKey = "unit-test-session-secret-0123456789abcdef"
	cfg.Session.ExpireHours = 1
	cfg.Security.PasswordPolicy.MinLength = 8
	return NewUserAuthService(cfg, repository.NewUserRepository(db)), db
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:    "alice",
		Email:       "Alice@Example.com",
		Password:    "correct-horse",
		DisplayName: "Alice",
	}
}

func TestRegisterAndSessionToken(t *testing.T) {
	svc, _ := newAuthTestService(t)

	user, token, expiresAt, err := svc.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email should be lowercased, got %q", user.Email)
	}
	if token == "" {
		t.Fatalf("register should issue a session token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("token expiry should be in the future, got %v", expiresAt)
	}

	claims, err := svc.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "alice" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthTestService(t)

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
		want   error
	}{
		{name: "short username", mutate: func(in *RegisterInput) { in.Username = "ab" }, want: ErrInvalidUsername},
		{name: "username with spaces", mutate: func(in *RegisterInput) { in.Username = "a b c" }, want: ErrInvalidUsername},
		{name: "bad email", mutate: func(in *RegisterInput) { in.Email = "not-an-email" }, want: ErrInvalidEmail},
		{name: "short password", mutate: func(in *RegisterInput) { in.Password = "short" }, want: ErrWeakPassword},
	}
	for _, tc := range cases {
		input := validRegisterInput()
		tc.mutate(&input)
		if _, _, _, err := svc.Register(input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, err)
		}
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := newAuthTestService(t)

	if _, _, _, err := svc.Register(validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	dupUsername := validRegisterInput()
	dupUsername.Email = "alice2@example.com"
	if _, _, _, err := svc.Register(dupUsername); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("duplicate username want ErrUsernameExists got %v", err)
	}

	dupEmail := validRegisterInput()
	dupEmail.Username = "alice2"
	if _, _, _, err := svc.Register(dupEmail); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email want ErrEmailExists got %v", err)
	}
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	svc, _ := newAuthTestService(t)

	registered, _, _, err := svc.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, credential := range []string{"alice", "ALICE@example.com"} {
		user, token, _, err := svc.Login(credential, "correct-horse")
		if err != nil {
			t.Fatalf("login with %q failed: %v", credential, err)
		}
		if user.ID != registered.ID {
			t.Fatalf("login with %q returned user %d want %d", credential, user.ID, registered.ID)
		}
		if token == "" {
			t.Fatalf("login with %q should issue a session token", credential)
		}
	}
}

func TestLoginRejections(t *testing.T) {
	svc, db := newAuthTestService(t)

	user, _, _, err := svc.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := svc.Login("alice", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}

	if err := db.Model(user).Update("status", "disabled").Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("alice", "correct-horse"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("disabled user want ErrUserDisabled got %v", err)
	}
}

func TestParseSessionTokenRejectsTampering(t *testing.T) {
	svc, _ := newAuthTestService(t)

	_, token, _, err := svc.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.ParseSessionToken(token + "x"); err == nil {
		t.Fatalf("tampered token should not parse")
	}
	if _, err := svc.ParseSessionToken("not-a-token"); err == nil {
		t.Fatalf("garbage token should not parse")
	}
}
