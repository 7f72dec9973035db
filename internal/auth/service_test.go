package auth_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/worklink/worklink-backend/internal/auth"
	"github.com/worklink/worklink-backend/internal/principal"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

// Mock principal repository for testing
type mockPrincipalRepository struct {
	users     map[string]*principal.User
	employers map[string]*principal.Employer
	admins    map[string]*principal.Admin
	createErr error
}

func newMockPrincipalRepository() *mockPrincipalRepository {
	return &mockPrincipalRepository{
		users:     make(map[string]*principal.User),
		employers: make(map[string]*principal.Employer),
		admins:    make(map[string]*principal.Admin),
	}
}

func (m *mockPrincipalRepository) GetUserByID(id string) (*principal.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, principal.ErrNotFound
}

func (m *mockPrincipalRepository) GetEmployerByID(id string) (*principal.Employer, error) {
	for _, e := range m.employers {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, principal.ErrNotFound
}

func (m *mockPrincipalRepository) GetAdminByID(id string) (*principal.Admin, error) {
	for _, a := range m.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, principal.ErrNotFound
}

func (m *mockPrincipalRepository) GetUserByEmail(email string) (*principal.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, principal.ErrNotFound
}

func (m *mockPrincipalRepository) GetEmployerByEmail(email string) (*principal.Employer, error) {
	if e, ok := m.employers[email]; ok {
		return e, nil
	}
	return nil, principal.ErrNotFound
}

func (m *mockPrincipalRepository) GetAdminByEmail(email string) (*principal.Admin, error) {
	if a, ok := m.admins[email]; ok {
		return a, nil
	}
	return nil, principal.ErrNotFound
}

func (m *mockPrincipalRepository) EmailInUse(email string) (bool, error) {
	if _, ok := m.users[email]; ok {
		return true, nil
	}
	_, ok := m.employers[email]
	return ok, nil
}

func (m *mockPrincipalRepository) PhoneInUse(phone string) (bool, error) {
	for _, u := range m.users {
		if u.PhoneNumber == phone {
			return true, nil
		}
	}
	for _, e := range m.employers {
		if e.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockPrincipalRepository) CreateUser(u *principal.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.users[u.Email] = u
	return nil
}

func (m *mockPrincipalRepository) CreateEmployer(e *principal.Employer) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.employers[e.Email] = e
	return nil
}

func (m *mockPrincipalRepository) UpdateUser(u *principal.User) error {
	m.users[u.Email] = u
	return nil
}

func (m *mockPrincipalRepository) UpdateEmployer(e *principal.Employer) error {
	m.employers[e.Email] = e
	return nil
}

func (m *mockPrincipalRepository) Exists(kind, id string) (bool, error) {
	switch kind {
	case principal.KindUser:
		_, err := m.GetUserByID(id)
		return err == nil, nil
	case principal.KindEmployer:
		_, err := m.GetEmployerByID(id)
		return err == nil, nil
	case principal.KindAdmin:
		_, err := m.GetAdminByID(id)
		return err == nil, nil
	}
	return false, nil
}

var _ = Describe("AuthService", func() {
	var (
		service  *auth.Service
		mockRepo *mockPrincipalRepository
		tokens   *auth.JWTTokenGenerator
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockPrincipalRepository()
		tokens = auth.NewJWTTokenGenerator("test-secret-at-least-32-characters-long", time.Hour, 72*time.Hour)
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(mockRepo, tokens, logger)
	})

	userDTO := func() auth.RegisterUserDTO {
		return auth.RegisterUserDTO{
			FirstName:   "Jean",
			LastName:    "Mugisha",
			PhoneNumber: "0788123456",
			Email:       "Jean@Example.com",
			Password:    "password123",
			DateOfBirth: time.Date(1995, 3, 14, 0, 0, 0, 0, time.UTC),
			District:    "Kicukiro",
		}
	}

	employerDTO := func() auth.RegisterEmployerDTO {
		return auth.RegisterEmployerDTO{
			CompanyName: "Kigali Home Services Ltd",
			PhoneNumber: "0788100200",
			Email:       "hr@company.rw",
			Password:    "password123",
			District:    "Gasabo",
		}
	}

	Describe("RegisterUser", func() {
		It("should create the user and return a token pair for the user kind", func() {
			result, err := service.RegisterUser(userDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(result.AccessToken).ToNot(BeEmpty())
			Expect(result.RefreshToken).ToNot(BeEmpty())
			Expect(result.TokenType).To(Equal("bearer"))
			Expect(result.PrincipalKind).To(Equal(principal.KindUser))

			claims, err := tokens.ValidateToken(result.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.PrincipalID).To(Equal(result.PrincipalID))
			Expect(claims.Kind).To(Equal(principal.KindUser))
			Expect(claims.TokenKind).To(BeEmpty())
		})

		It("should lowercase the email and normalize the phone number", func() {
			_, err := service.RegisterUser(userDTO())
			Expect(err).ToNot(HaveOccurred())

			stored, err := mockRepo.GetUserByEmail("jean@example.com")
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.Email).To(Equal("jean@example.com"))
			Expect(stored.PhoneNumber).To(Equal("+250788123456"))
			Expect(stored.PasswordHash).ToNot(Equal("password123"))
		})

		It("should reject a duplicate email", func() {
			_, err := service.RegisterUser(userDTO())
			Expect(err).ToNot(HaveOccurred())

			dto := userDTO()
			dto.PhoneNumber = "0788999888"
			_, err = service.RegisterUser(dto)
			Expect(err).To(MatchError(auth.ErrEmailTaken))
		})

		It("should reject a phone number already used by an employer", func() {
			_, err := service.RegisterEmployer(employerDTO())
			Expect(err).ToNot(HaveOccurred())

			dto := userDTO()
			dto.PhoneNumber = "0788100200"
			_, err = service.RegisterUser(dto)
			Expect(err).To(MatchError(auth.ErrPhoneTaken))
		})

		It("should return validation error for a short password", func() {
			dto := userDTO()
			dto.Password = "short"

			_, err := service.RegisterUser(dto)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("password"))
		})

		It("should surface repository errors", func() {
			mockRepo.createErr = errors.New("database error")

			_, err := service.RegisterUser(userDTO())
			Expect(err).To(MatchError(ContainSubstring("database error")))
		})
	})

	Describe("RegisterEmployer", func() {
		It("should create the employer and return a token pair for the employer kind", func() {
			result, err := service.RegisterEmployer(employerDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(result.PrincipalKind).To(Equal(principal.KindEmployer))

			claims, err := tokens.ValidateToken(result.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Kind).To(Equal(principal.KindEmployer))
		})

		It("should require a company name", func() {
			dto := employerDTO()
			dto.CompanyName = ""

			_, err := service.RegisterEmployer(dto)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("company_name"))
		})
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			_, err := service.RegisterUser(userDTO())
			Expect(err).ToNot(HaveOccurred())
			_, err = service.RegisterEmployer(employerDTO())
			Expect(err).ToNot(HaveOccurred())
		})

		It("should log in a registered user with the right password", func() {
			result, err := service.Authenticate(auth.LoginDTO{Email: "jean@example.com", Password: "password123"})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.PrincipalKind).To(Equal(principal.KindUser))
		})

		It("should fall through to the employer table", func() {
			result, err := service.Authenticate(auth.LoginDTO{Email: "hr@company.rw", Password: "password123"})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.PrincipalKind).To(Equal(principal.KindEmployer))
		})

		It("should fall through to the admin table", func() {
			hash, err := auth.HashPassword("adminpass123", 10)
			Expect(err).ToNot(HaveOccurred())
			mockRepo.admins["admin@worklink.rw"] = &principal.Admin{
				ID:           "admin-1",
				Email:        "admin@worklink.rw",
				PasswordHash: hash,
			}

			result, err := service.Authenticate(auth.LoginDTO{Email: "admin@worklink.rw", Password: "adminpass123"})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.PrincipalKind).To(Equal(principal.KindAdmin))
			Expect(result.PrincipalID).To(Equal("admin-1"))
		})

		It("should reject a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "jean@example.com", Password: "wrongpass123"})
			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("should reject an unknown email", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "nobody@example.com", Password: "password123"})
			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})
	})

	Describe("RefreshTokens", func() {
		It("should issue a new pair from a valid refresh token", func() {
			registered, err := service.RegisterUser(userDTO())
			Expect(err).ToNot(HaveOccurred())

			refreshed, err := service.RefreshTokens(registered.RefreshToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(refreshed.PrincipalID).To(Equal(registered.PrincipalID))
			Expect(refreshed.PrincipalKind).To(Equal(principal.KindUser))
			Expect(refreshed.AccessToken).ToNot(BeEmpty())
		})

		It("should reject an access token presented as a refresh token", func() {
			registered, err := service.RegisterUser(userDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.RefreshTokens(registered.AccessToken)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("should reject an expired refresh token", func() {
			expired := auth.NewJWTTokenGenerator("test-secret-at-least-32-characters-long", -time.Minute, -time.Minute)
			token, err := expired.GenerateRefreshToken("user-1", principal.KindUser)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.RefreshTokens(token)
			Expect(err).To(MatchError(auth.ErrTokenExpired))
		})

		It("should reject garbage", func() {
			_, err := service.RefreshTokens("not.a.token")
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})
	})

	Describe("JWTTokenGenerator", func() {
		It("should reject tokens signed with a different secret", func() {
			other := auth.NewJWTTokenGenerator("another-secret-that-is-32-chars-long!!", time.Hour, 72*time.Hour)
			token, err := other.GenerateAccessToken("user-1", principal.KindUser)
			Expect(err).ToNot(HaveOccurred())

			_, err = tokens.ValidateToken(token)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("should mark refresh tokens with the refresh kind", func() {
			token, err := tokens.GenerateRefreshToken("user-1", principal.KindUser)
			Expect(err).ToNot(HaveOccurred())

			claims, err := tokens.ValidateToken(token)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.TokenKind).To(Equal(auth.TokenKindRefresh))
		})
	})
})
