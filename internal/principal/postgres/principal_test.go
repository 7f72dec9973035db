package postgres

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/worklink/worklink-backend/internal/principal"
)

func TestPrincipalRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "PrincipalRepository Suite")
}

var _ = Describe("PrincipalRepository", func() {
	var (
		db   *gorm.DB
		repo principal.Repository
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&principal.User{}, &principal.Employer{}, &principal.Admin{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewPrincipalRepository(db)

		Expect(repo.CreateUser(&principal.User{
			ID:          "user-1",
			FirstName:   "Jean",
			LastName:    "Mugisha",
			PhoneNumber: "+250788300400",
			Email:       "worker@example.com",
			DateOfBirth: time.Date(1995, 3, 14, 0, 0, 0, 0, time.UTC),
			District:    "Kicukiro",
		})).To(Succeed())

		Expect(repo.CreateEmployer(&principal.Employer{
			ID:          "employer-1",
			CompanyName: "Kigali Home Services Ltd",
			PhoneNumber: "+250788100200",
			Email:       "hr@example.com",
			District:    "Gasabo",
		})).To(Succeed())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("EmailInUse", func() {
		It("should see emails from both the user and employer tables", func() {
			for email, want := range map[string]bool{
				"worker@example.com": true,
				"hr@example.com":     true,
				"free@example.com":   false,
			} {
				used, err := repo.EmailInUse(email)
				Expect(err).NotTo(HaveOccurred())
				Expect(used).To(Equal(want), "email %s", email)
			}
		})
	})

	Describe("PhoneInUse", func() {
		It("should see phone numbers from both tables", func() {
			used, err := repo.PhoneInUse("+250788100200")
			Expect(err).NotTo(HaveOccurred())
			Expect(used).To(BeTrue())

			used, err = repo.PhoneInUse("+250788999999")
			Expect(err).NotTo(HaveOccurred())
			Expect(used).To(BeFalse())
		})
	})

	Describe("Exists", func() {
		It("should match id and kind together", func() {
			exists, err := repo.Exists(principal.KindUser, "user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = repo.Exists(principal.KindEmployer, "user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())

			exists, err = repo.Exists("bogus", "user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("Lookups", func() {
		It("should return not found for missing rows", func() {
			_, err := repo.GetUserByID("missing")
			Expect(err).To(MatchError(principal.ErrNotFound))

			_, err = repo.GetAdminByEmail("nobody@example.com")
			Expect(err).To(MatchError(principal.ErrNotFound))
		})
	})
})

var _ = Describe("PrincipalService", func() {
	var (
		db      *gorm.DB
		service *principal.Service
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&principal.User{}, &principal.Employer{}, &principal.Admin{})
		Expect(err).NotTo(HaveOccurred())

		repo := NewPrincipalRepository(db)
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = principal.NewService(repo, slogger)

		Expect(repo.CreateUser(&principal.User{
			ID:          "user-1",
			FirstName:   "Jean",
			LastName:    "Mugisha",
			PhoneNumber: "+250788300400",
			Email:       "worker@example.com",
			DateOfBirth: time.Date(1995, 3, 14, 0, 0, 0, 0, time.UTC),
			District:    "Kicukiro",
		})).To(Succeed())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("should apply only the provided profile fields", func() {
		district := "Gasabo"
		updated, err := service.UpdateUser("user-1", principal.UpdateUserDTO{District: &district})

		Expect(err).NotTo(HaveOccurred())
		Expect(updated.District).To(Equal("Gasabo"))
		Expect(updated.FirstName).To(Equal("Jean"))
	})

	It("should normalize an updated phone number", func() {
		phone := "0788555666"
		updated, err := service.UpdateUser("user-1", principal.UpdateUserDTO{PhoneNumber: &phone})

		Expect(err).NotTo(HaveOccurred())
		Expect(updated.PhoneNumber).To(Equal("+250788555666"))
	})

	It("should return not found for an unknown principal", func() {
		_, err := service.GetUser("missing")
		Expect(err).To(MatchError(principal.ErrNotFound))
	})
})
