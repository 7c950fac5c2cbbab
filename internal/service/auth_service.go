package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zodiac/internal/dto"
	"zodiac/internal/model"
	"zodiac/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// Claims carried in access and refresh tokens.
type Claims struct {
	ActorID   string `json:"actor_id"`
	ActorKind string `json:"actor_kind"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// AuthService handles registration and polymorphic login. All three actor
// kinds verify against bcrypt hashes; a lookup miss and a password mismatch
// are indistinguishable to the caller.
type AuthService struct {
	users     repository.UserRepository
	suppliers repository.SupplierRepository
	admins    repository.AdminRepository

	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(
	users repository.UserRepository,
	suppliers repository.SupplierRepository,
	admins repository.AdminRepository,
	jwtSecret string,
	accessHours, refreshHours int,
) *AuthService {
	if accessHours <= 0 {
		accessHours = 24
	}
	if refreshHours <= 0 {
		refreshHours = 168
	}
	return &AuthService{
		users:      users,
		suppliers:  suppliers,
		admins:     admins,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  time.Duration(accessHours) * time.Hour,
		refreshTTL: time.Duration(refreshHours) * time.Hour,
	}
}

// RegisterCustomer creates a customer account. Email uniqueness is enforced
// twice: a pre-check for a friendly error, and the unique index for the
// race where two registrations interleave.
func (s *AuthService) RegisterCustomer(ctx context.Context, req *dto.RegisterRequest) (*dto.ActorResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.ActorCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, storeErr(err)
	}

	log.Info().Str("user_id", user.ID.String()).Msg("customer registered")

	return &dto.ActorResponse{
		ID:        user.ID.String(),
		ActorKind: model.ActorCustomer,
		Name:      user.Username,
		Email:     user.Email,
	}, nil
}

// Login authenticates any actor kind and issues an access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var (
		actor dto.ActorResponse
		hash  string
	)

	switch req.ActorKind {
	case model.ActorAdmin:
		cred, err := s.admins.FindByAdminID(ctx, req.Identifier)
		if err != nil {
			return nil, credentialErr(err)
		}
		hash = cred.PasswordHash
		actor = dto.ActorResponse{ID: cred.AdminID, ActorKind: model.ActorAdmin, Name: cred.AdminID}

	case model.ActorSupplier:
		sup, err := s.suppliers.FindByName(ctx, req.Identifier)
		if err != nil {
			return nil, credentialErr(err)
		}
		hash = sup.PasswordHash
		actor = dto.ActorResponse{ID: sup.ID.String(), ActorKind: model.ActorSupplier, Name: sup.Name}

	case model.ActorCustomer:
		user, err := s.users.FindByEmail(ctx, req.Identifier)
		if err != nil {
			return nil, credentialErr(err)
		}
		hash = user.PasswordHash
		actor = dto.ActorResponse{ID: user.ID.String(), ActorKind: model.ActorCustomer, Name: user.Username, Email: user.Email}

	default:
		return nil, fmt.Errorf("%w: unknown actor kind %q", ErrInvalidInput, req.ActorKind)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(actor)
}

// Refresh validates a refresh token and reissues a token pair from its claims.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	actor := dto.ActorResponse{ID: claims.ActorID, ActorKind: claims.ActorKind, Name: claims.Name}
	return s.issueTokens(actor)
}

// ParseToken validates signature and expiry, returning the claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) issueTokens(actor dto.ActorResponse) (*dto.LoginResponse, error) {
	access, err := s.signToken(actor, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.signToken(actor, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.accessTTL.Seconds()),
		Actor:        actor,
	}, nil
}

func (s *AuthService) signToken(actor dto.ActorResponse, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		ActorID:   actor.ID,
		ActorKind: actor.ActorKind,
		Name:      actor.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// credentialErr hides lookup misses behind ErrInvalidCredentials so login
// cannot be used to enumerate accounts. Store failures still surface.
func credentialErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidCredentials
	}
	return storeErr(err)
}
