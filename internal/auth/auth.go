package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenKindRefresh marks refresh tokens. Access tokens carry no token kind;
// verification treats an empty kind as "access".
const TokenKindRefresh = "refresh"

// Claims is the signed token payload: which principal, which of the three
// kinds, and (for refresh tokens) the token kind marker. Decoding a token
// does not authorize anything by itself; callers must also check Kind
// against the endpoint's expected principal type.
type Claims struct {
	PrincipalID string `json:"principal_id"`
	Kind        string `json:"kind"`
	TokenKind   string `json:"token_kind,omitempty"`
	jwt.RegisteredClaims
}

// AuthTokens is the response body for register, login and refresh.
type AuthTokens struct {
	AccessToken   string `json:"access_token"`
	RefreshToken  string `json:"refresh_token"`
	TokenType     string `json:"token_type"`
	PrincipalID   string `json:"principal_id"`
	PrincipalKind string `json:"principal_kind"`
}

// TokenGeneratorAPI creates and verifies signed bearer tokens.
type TokenGeneratorAPI interface {
	GenerateAccessToken(principalID, kind string) (string, error)
	GenerateRefreshToken(principalID, kind string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type ServiceAPI interface {
	RegisterUser(dto RegisterUserDTO) (AuthTokens, error)
	RegisterEmployer(dto RegisterEmployerDTO) (AuthTokens, error)
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	Secret          []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPhoneTaken         = errors.New("phone number already registered")
	ErrPrincipalNotFound  = errors.New("principal not found")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
