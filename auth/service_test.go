package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestService_RegisterAndLogin(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret", 24*time.Hour)

	req := RegisterRequest{
		Email:     "alice@example.com",
		Password:  "secret1",
		FirstName: "Alice",
		LastName:  "Mason",
		Phone:     "07700900001",
		Address:   "1 Glass St",
		City:      "Leeds",
		Postcode:  "LS1 1AA",
	}

	ctx := context.Background()
	reg, err := svc.Register(ctx, req)
	if err != nil {
		t.Fatalf("register: unexpected error: %v", err)
	}
	if reg.User.Email != req.Email {
		t.Fatalf("expected email %q got %q", req.Email, reg.User.Email)
	}
	if reg.Token == "" {
		t.Fatal("register: expected token, got empty string")
	}

	resp, err := svc.Login(ctx, LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		t.Fatalf("login: unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login: expected token, got empty string")
	}
	if resp.User.ID != reg.User.ID {
		t.Fatalf("login: expected user id %q got %q", reg.User.ID, resp.User.ID)
	}

	tokenUserID, err := svc.VerifyToken(resp.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if tokenUserID != reg.User.ID {
		t.Fatalf("verify token: expected %q got %q", reg.User.ID, tokenUserID)
	}
}

func TestService_RegisterValidation(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret", 24*time.Hour)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "alice@example.com",
		Password:  "short",
		FirstName: "Alice",
		LastName:  "Mason",
		Phone:     "07700900001",
		Address:   "1 Glass St",
		City:      "Leeds",
		Postcode:  "LS1 1AA",
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Password: "strongpassword",
	}); err == nil {
		t.Fatal("expected validation error for missing fields")
	}
}

func TestService_DuplicateEmail(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret", 24*time.Hour)

	req := validRegisterRequest("alice@example.com")
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(repo.usersByID) != 1 {
		t.Fatalf("expected single user row, got %d", len(repo.usersByID))
	}
}

func TestService_LoginInvalidCredentials(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret", 24*time.Hour)

	if _, err := svc.Register(context.Background(), validRegisterRequest("alice@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Wrong email and wrong password must be indistinguishable.
	_, errEmail := svc.Login(context.Background(), LoginRequest{
		Email:    "unknown@example.com",
		Password: "secret1",
	})
	_, errPassword := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(errEmail, ErrInvalidCredentials) {
		t.Fatalf("wrong email: expected ErrInvalidCredentials, got %v", errEmail)
	}
	if !errors.Is(errPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errPassword)
	}
	if errEmail.Error() != errPassword.Error() {
		t.Fatalf("credential errors leak information: %q vs %q", errEmail, errPassword)
	}
}

func TestService_VerifyToken_Expired(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret", 24*time.Hour)

	reg, err := svc.Register(context.Background(), validRegisterRequest("alice@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	svc.WithClock(func() time.Time { return time.Now().Add(25 * time.Hour) })
	if _, err := svc.VerifyToken(reg.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestService_VerifyToken_Forged(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret", 24*time.Hour)
	other := NewService(repo, "other-secret", 24*time.Hour)

	reg, err := svc.Register(context.Background(), validRegisterRequest("alice@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := other.VerifyToken(reg.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong signature, got %v", err)
	}
	if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func validRegisterRequest(email string) RegisterRequest {
	return RegisterRequest{
		Email:     email,
		Password:  "secret1",
		FirstName: "Alice",
		LastName:  "Mason",
		Phone:     "07700900001",
		Address:   "1 Glass St",
		City:      "Leeds",
		Postcode:  "LS1 1AA",
	}
}

type fakeRepository struct {
	usersByEmail map[string]User
	usersByID    map[string]User
	nextID       int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		usersByEmail: make(map[string]User),
		usersByID:    make(map[string]User),
		nextID:       1,
	}
}

func (f *fakeRepository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	if _, exists := f.usersByEmail[strings.ToLower(params.Email)]; exists {
		return User{}, ErrDuplicateEmail
	}

	id := fmt.Sprintf("user-%d", f.nextID)
	f.nextID++

	user := User{
		ID:           id,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Phone:        params.Phone,
		Address:      params.Address,
		City:         params.City,
		Postcode:     params.Postcode,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	f.usersByEmail[strings.ToLower(user.Email)] = user
	f.usersByID[user.ID] = user

	return user, nil
}

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	user, ok := f.usersByEmail[strings.ToLower(email)]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) GetUserByID(ctx context.Context, userID string) (User, error) {
	user, ok := f.usersByID[userID]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) GetPublicProfile(ctx context.Context, userID string) (PublicProfile, error) {
	user, ok := f.usersByID[userID]
	if !ok {
		return PublicProfile{}, ErrUserNotFound
	}
	return PublicProfile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		City:      user.City,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (f *fakeRepository) UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (User, error) {
	user, ok := f.usersByID[userID]
	if !ok {
		return User{}, ErrUserNotFound
	}
	user.FirstName = params.FirstName
	user.LastName = params.LastName
	user.Phone = params.Phone
	user.Address = params.Address
	user.City = params.City
	user.Postcode = params.Postcode
	user.ProfileImage = params.ProfileImage
	user.UpdatedAt = time.Now().UTC()
	f.usersByID[userID] = user
	f.usersByEmail[strings.ToLower(user.Email)] = user
	return user, nil
}
