package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/arganhr/backoffice/internal/data/repos"
	"github.com/arganhr/backoffice/internal/domain"
	"github.com/arganhr/backoffice/internal/platform/logger"
	"github.com/arganhr/backoffice/internal/requestdata"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type jwtClaims struct {
	AdminID string `json:"admin_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, adminID uuid.UUID) error
	ContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	adminRepo    repos.AdminRepo
	tokenRepo    repos.TokenRepo
	jwtSecretKey string
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	adminRepo repos.AdminRepo,
	tokenRepo repos.TokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		adminRepo:    adminRepo,
		tokenRepo:    tokenRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, NewValidationError("Email and password are required")
	}

	admin, err := s.adminRepo.GetActiveByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("look up admin: %w", err)
	}
	if admin == nil {
		return nil, NewValidationError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, NewValidationError("Invalid email or password")
	}

	pair, err := s.issueTokens(ctx, admin)
	if err != nil {
		return nil, err
	}
	s.log.Info("Admin logged in", "admin_id", admin.ID)
	return pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	row, err := s.tokenRepo.GetByToken(ctx, nil, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("look up refresh token: %w", err)
	}
	if row == nil || row.ExpiresAt.Before(time.Now()) {
		return nil, NewValidationError("Refresh token is invalid or expired")
	}
	admin, err := s.adminRepo.GetByID(ctx, nil, row.AdminID)
	if err != nil {
		return nil, fmt.Errorf("look up admin: %w", err)
	}
	if admin.Status != domain.AdminStatusActive {
		return nil, NewValidationError("Account is no longer active")
	}
	return s.issueTokens(ctx, admin)
}

func (s *authService) Logout(ctx context.Context, adminID uuid.UUID) error {
	return s.tokenRepo.DeleteByAdmin(ctx, nil, adminID)
}

func (s *authService) issueTokens(ctx context.Context, admin *domain.Admin) (*TokenPair, error) {
	access, err := s.signAccessToken(admin)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh := uuid.NewString()
	_, err = s.tokenRepo.Upsert(ctx, nil, &domain.AdminToken{
		ID:        uuid.New(),
		AdminID:   admin.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	})
	if err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) signAccessToken(admin *domain.Admin) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		AdminID: admin.ID.String(),
		Role:    admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecretKey))
}

// ContextFromToken verifies the bearer token and attaches the session
// identity to the context for downstream services.
func (s *authService) ContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return nil, NewValidationError("Invalid or expired token")
	}
	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok {
		return nil, NewValidationError("Invalid token claims")
	}
	adminID, err := uuid.Parse(claims.AdminID)
	if err != nil {
		return nil, NewValidationError("Invalid token claims")
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		AdminID:     adminID,
		Role:        claims.Role,
	}), nil
}
