package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/arganhr/backoffice/internal/domain"
	"github.com/arganhr/backoffice/internal/requestdata"
)

// countingAvatarService stands in for the gg renderer and bucket upload.
type countingAvatarService struct {
	uploads int
}

func (s *countingAvatarService) CreateAndUploadAdminAvatar(_ context.Context, admin *domain.Admin) error {
	s.uploads++
	admin.AvatarBucketKey = "avatars/" + admin.ID.String() + ".png"
	admin.AvatarURL = "https://cdn.test/" + admin.AvatarBucketKey
	return nil
}

func mustCreateAdmin(t *testing.T, env *testEnv, email, password string) {
	t.Helper()
	_, err := env.admins.Create(context.Background(), CreateAdminInput{
		Email:     email,
		Password:  password,
		FirstName: "Pat",
		LastName:  "Lee",
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
}

func TestAdminCreateHashesPassword(t *testing.T) {
	env := newTestEnv(t)
	admin, err := env.admins.Create(context.Background(), CreateAdminInput{
		Email:     "pat@argan.co.uk",
		Password:  "correct horse",
		FirstName: "Pat",
		LastName:  "Lee",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if admin.Role != "STAFF" {
		t.Errorf("role = %q, want STAFF default", admin.Role)
	}
	if admin.Password == "correct horse" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("correct horse")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestAdminDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	mustCreateAdmin(t, env, "dup@argan.co.uk", "password123")
	_, err := env.admins.Create(context.Background(), CreateAdminInput{
		Email:     "dup@argan.co.uk",
		Password:  "password456",
		FirstName: "Other",
		LastName:  "Person",
	})
	var emailErr *EmailExistsError
	if !errors.As(err, &emailErr) {
		t.Fatalf("err = %v, want EmailExistsError", err)
	}
}

func TestAdminAvatarOnlyAfterSuccessfulCreate(t *testing.T) {
	env := newTestEnv(t)
	avatars := &countingAvatarService{}
	admins := NewAdminService(env.db, env.log, env.repos.Admin, avatars)
	ctx := context.Background()

	created, err := admins.Create(ctx, CreateAdminInput{
		Email:     "ava@argan.co.uk",
		Password:  "password123",
		FirstName: "Ava",
		LastName:  "Stone",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if avatars.uploads != 1 {
		t.Fatalf("uploads = %d, want 1", avatars.uploads)
	}
	if created.AvatarBucketKey == "" || created.AvatarURL == "" {
		t.Errorf("avatar not set on returned admin: %q %q", created.AvatarBucketKey, created.AvatarURL)
	}
	stored, err := admins.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.AvatarURL != created.AvatarURL {
		t.Errorf("persisted url = %q, want %q", stored.AvatarURL, created.AvatarURL)
	}

	// A rejected duplicate never reaches the bucket.
	_, err = admins.Create(ctx, CreateAdminInput{
		Email:     "ava@argan.co.uk",
		Password:  "password456",
		FirstName: "Other",
		LastName:  "Person",
	})
	var emailErr *EmailExistsError
	if !errors.As(err, &emailErr) {
		t.Fatalf("err = %v, want EmailExistsError", err)
	}
	if avatars.uploads != 1 {
		t.Errorf("uploads = %d, want 1 after rejected create", avatars.uploads)
	}
}

func TestLoginAndTokenRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateAdmin(t, env, "pat@argan.co.uk", "password123")

	pair, err := env.auth.Login(ctx, "PAT@argan.co.uk", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("empty token pair")
	}

	authed, err := env.auth.ContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	rd, ok := requestdata.GetRequestData(authed)
	if !ok {
		t.Fatal("no request data on context")
	}
	if rd.Role != "STAFF" {
		t.Errorf("role claim = %q", rd.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	mustCreateAdmin(t, env, "pat@argan.co.uk", "password123")

	_, err := env.auth.Login(context.Background(), "pat@argan.co.uk", "nope")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateAdmin(t, env, "pat@argan.co.uk", "password123")

	pair, err := env.auth.Login(ctx, "pat@argan.co.uk", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	next, err := env.auth.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Error("refresh token not rotated")
	}
	// The old token is gone once rotated.
	var validationErr *ValidationError
	if _, err := env.auth.Refresh(ctx, pair.RefreshToken); !errors.As(err, &validationErr) {
		t.Fatalf("stale refresh = %v, want ValidationError", err)
	}
}

func TestDeactivatedAdminCannotLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateAdmin(t, env, "pat@argan.co.uk", "password123")

	admins, err := env.admins.List(ctx)
	if err != nil || len(admins) != 1 {
		t.Fatalf("list: %v (%d rows)", err, len(admins))
	}
	if _, err := env.admins.Deactivate(ctx, admins[0].ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	var validationErr *ValidationError
	if _, err := env.auth.Login(ctx, "pat@argan.co.uk", "password123"); !errors.As(err, &validationErr) {
		t.Fatalf("login after deactivation = %v, want ValidationError", err)
	}
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateAdmin(t, env, "pat@argan.co.uk", "password123")
	admins, err := env.admins.List(ctx)
	if err != nil || len(admins) != 1 {
		t.Fatalf("list: %v", err)
	}
	id := admins[0].ID

	var validationErr *ValidationError
	if err := env.admins.ChangePassword(ctx, id, "wrong", "newpassword1"); !errors.As(err, &validationErr) {
		t.Fatalf("wrong current password = %v, want ValidationError", err)
	}
	var fieldErr *FieldValidationError
	if err := env.admins.ChangePassword(ctx, id, "password123", "short"); !errors.As(err, &fieldErr) {
		t.Fatalf("short password = %v, want FieldValidationError", err)
	}
	if err := env.admins.ChangePassword(ctx, id, "password123", "newpassword1"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if _, err := env.auth.Login(ctx, "pat@argan.co.uk", "newpassword1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}
