package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials signals wrong email or password. Callers must not
	// learn which of the two was wrong.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrWeakPassword signals password doesn't meet requirements.
	ErrWeakPassword = errors.New("auth: password must be at least 6 characters")
	// ErrInvalidToken signals a missing, malformed, expired or forged token.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Service handles authentication business logic.
type Service struct {
	repo          Repository
	jwtSecret     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// LoginResult bundles the token and domain user returned after a successful login.
type LoginResult struct {
	Token string
	User  User
}

// NewService creates a new authentication service.
func NewService(repo Repository, jwtSecret string, tokenDuration time.Duration) *Service {
	if tokenDuration <= 0 {
		tokenDuration = 24 * time.Hour
	}
	return &Service{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

// WithClock overrides the time source, used by expiry tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register creates a new homeowner account and returns a session token for it.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (LoginResult, error) {
	if len(req.Password) < 6 {
		return LoginResult{}, ErrWeakPassword
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return LoginResult{}, fmt.Errorf("auth: valid email is required")
	}
	for field, value := range map[string]string{
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"phone":     req.Phone,
		"address":   req.Address,
		"city":      req.City,
		"postcode":  req.Postcode,
	} {
		if strings.TrimSpace(value) == "" {
			return LoginResult{}, fmt.Errorf("auth: %s is required", field)
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return LoginResult{}, fmt.Errorf("auth: hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, CreateUserParams{
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Postcode:     req.Postcode,
	})
	if err != nil {
		return LoginResult{}, err
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("auth: generate token: %w", err)
	}

	return LoginResult{Token: token, User: user}, nil
}

// Login authenticates a user and returns a JWT token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("auth: generate token: %w", err)
	}

	return LoginResult{Token: token, User: user}, nil
}

// GetUserByID retrieves user information by ID.
func (s *Service) GetUserByID(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetPublicProfile returns the publicly visible fields of a user.
func (s *Service) GetPublicProfile(ctx context.Context, userID string) (PublicProfile, error) {
	return s.repo.GetPublicProfile(ctx, userID)
}

// UpdateProfile rewrites the caller's own profile row.
func (s *Service) UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (User, error) {
	for field, value := range map[string]string{
		"firstName": params.FirstName,
		"lastName":  params.LastName,
		"phone":     params.Phone,
		"address":   params.Address,
		"city":      params.City,
		"postcode":  params.Postcode,
	} {
		if strings.TrimSpace(value) == "" {
			return User{}, fmt.Errorf("auth: %s is required", field)
		}
	}

	return s.repo.UpdateProfile(ctx, userID, params)
}

// VerifyToken validates a JWT token and returns the user ID it carries.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}

	return userID, nil
}

// generateToken creates a signed token carrying the user id and expiry.
func (s *Service) generateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     s.now().Add(s.tokenDuration).Unix(),
		"iat":     s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
