package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/worklink/worklink-backend/internal/core/common/textutil"
	"github.com/worklink/worklink-backend/internal/principal"
)

// Service handles registration, login and token refresh for all three
// principal kinds.
type Service struct {
	principals principal.Repository
	tokens     TokenGeneratorAPI
	logger     *slog.Logger
	bcryptCost int
}

func NewService(principals principal.Repository, tokens TokenGeneratorAPI, logger *slog.Logger) *Service {
	return &Service{
		principals: principals,
		tokens:     tokens,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// NewJWTTokenGenerator creates an HS256 token generator with the given
// secret and lifetimes.
func NewJWTTokenGenerator(secret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:          []byte(secret),
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	}
}

func (s *Service) RegisterUser(dto RegisterUserDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	email := strings.ToLower(dto.Email)
	phone := textutil.FormatPhoneNumber(dto.PhoneNumber)

	if err := s.checkUnique(email, phone); err != nil {
		return AuthTokens{}, err
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return AuthTokens{}, err
	}

	u := &principal.User{
		ID:           uuid.NewString(),
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		PhoneNumber:  phone,
		Email:        email,
		DateOfBirth:  dto.DateOfBirth,
		District:     dto.District,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.principals.CreateUser(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", email)
		return AuthTokens{}, err
	}

	s.logger.Info("user registered", "user_id", u.ID, "district", u.District)
	return s.issueTokens(u.ID, principal.KindUser)
}

func (s *Service) RegisterEmployer(dto RegisterEmployerDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	email := strings.ToLower(dto.Email)
	phone := textutil.FormatPhoneNumber(dto.PhoneNumber)

	if err := s.checkUnique(email, phone); err != nil {
		return AuthTokens{}, err
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return AuthTokens{}, err
	}

	e := &principal.Employer{
		ID:           uuid.NewString(),
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		CompanyName:  dto.CompanyName,
		PhoneNumber:  phone,
		Email:        email,
		District:     dto.District,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.principals.CreateEmployer(e); err != nil {
		s.logger.Error("failed to create employer", "error", err, "email", email)
		return AuthTokens{}, err
	}

	s.logger.Info("employer registered", "employer_id", e.ID, "company", e.CompanyName)
	return s.issueTokens(e.ID, principal.KindEmployer)
}

func (s *Service) checkUnique(email, phone string) error {
	taken, err := s.principals.EmailInUse(email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	taken, err = s.principals.PhoneInUse(phone)
	if err != nil {
		return err
	}
	if taken {
		return ErrPhoneTaken
	}
	return nil
}

// Authenticate checks the email against users, then employers, then admins.
// All misses collapse into the same invalid-credentials error.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	email := strings.ToLower(dto.Email)

	if u, err := s.principals.GetUserByEmail(email); err == nil {
		if VerifyPassword(u.PasswordHash, dto.Password) == nil {
			return s.issueTokens(u.ID, principal.KindUser)
		}
	}

	if e, err := s.principals.GetEmployerByEmail(email); err == nil {
		if VerifyPassword(e.PasswordHash, dto.Password) == nil {
			return s.issueTokens(e.ID, principal.KindEmployer)
		}
	}

	if a, err := s.principals.GetAdminByEmail(email); err == nil {
		if VerifyPassword(a.PasswordHash, dto.Password) == nil {
			return s.issueTokens(a.ID, principal.KindAdmin)
		}
	}

	s.logger.Warn("authentication failed", "email", email)
	return AuthTokens{}, ErrInvalidCredentials
}

// RefreshTokens exchanges a valid refresh token for a fresh pair. The token
// must decode, be unexpired and carry the refresh kind marker; access tokens
// are rejected here.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	if claims.TokenKind != TokenKindRefresh {
		s.logger.Warn("refresh attempted with non-refresh token", "principal_id", claims.PrincipalID)
		return AuthTokens{}, ErrInvalidToken
	}

	return s.issueTokens(claims.PrincipalID, claims.Kind)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateToken(tokenString)
}

func (s *Service) issueTokens(principalID, kind string) (AuthTokens, error) {
	accessToken, err := s.tokens.GenerateAccessToken(principalID, kind)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(principalID, kind)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		TokenType:     "bearer",
		PrincipalID:   principalID,
		PrincipalKind: kind,
	}, nil
}

// GenerateAccessToken creates a short-lived token carrying the principal's
// id and kind.
func (j *JWTTokenGenerator) GenerateAccessToken(principalID, kind string) (string, error) {
	now := time.Now()
	claims := &Claims{
		PrincipalID: principalID,
		Kind:        kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   principalID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// GenerateRefreshToken creates a long-lived token marked with the refresh
// token kind.
func (j *JWTTokenGenerator) GenerateRefreshToken(principalID, kind string) (string, error) {
	now := time.Now()
	claims := &Claims{
		PrincipalID: principalID,
		Kind:        kind,
		TokenKind:   TokenKindRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   principalID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// ValidateToken verifies the signature and expiry and returns the claims.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
