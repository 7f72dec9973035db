package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/worklink/worklink-backend/internal/admin"
	"github.com/worklink/worklink-backend/internal/application"
	"github.com/worklink/worklink-backend/internal/job"
	"github.com/worklink/worklink-backend/internal/principal"
	"github.com/worklink/worklink-backend/internal/worksession"
)

func TestAdminRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AdminRepository Suite")
}

var _ = Describe("AdminRepository", func() {
	var (
		db   *gorm.DB
		repo admin.RepositoryAPI
	)

	count := func(model interface{}, query string, args ...interface{}) int64 {
		var n int64
		q := db.Model(model)
		if query != "" {
			q = q.Where(query, args...)
		}
		Expect(q.Count(&n).Error).To(Succeed())
		return n
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&principal.User{},
			&principal.Employer{},
			&principal.Admin{},
			&job.Job{},
			&application.Application{},
			&worksession.WorkSession{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = NewAdminRepository(db)

		// Two workers, one employer with two jobs. The first worker applied
		// to both jobs and worked one session on each; the second worker
		// applied to the first job only.
		Expect(db.Create(&principal.User{
			ID: "user-1", FirstName: "Jean", LastName: "Mugisha",
			PhoneNumber: "+250788300400", Email: "worker1@example.com",
			DateOfBirth: time.Date(1995, 3, 14, 0, 0, 0, 0, time.UTC), District: "Kicukiro",
		}).Error).To(Succeed())
		Expect(db.Create(&principal.User{
			ID: "user-2", FirstName: "Alice", LastName: "Uwera",
			PhoneNumber: "+250788300500", Email: "worker2@example.com",
			DateOfBirth: time.Date(1992, 7, 1, 0, 0, 0, 0, time.UTC), District: "Gasabo",
		}).Error).To(Succeed())
		Expect(db.Create(&principal.Employer{
			ID: "employer-1", CompanyName: "Kigali Home Services Ltd",
			PhoneNumber: "+250788100200", Email: "hr@example.com", District: "Gasabo",
		}).Error).To(Succeed())

		Expect(db.Create(&job.Job{
			ID: "job-1", EmployerID: "employer-1", Title: "House cleaner needed",
			Slug: "house-cleaner-job1", Category: "Cleaning & Housekeeping",
			District: "Gasabo", Salary: 5000, Status: job.StatusActive,
		}).Error).To(Succeed())
		Expect(db.Create(&job.Job{
			ID: "job-2", EmployerID: "employer-1", Title: "Gardener needed",
			Slug: "gardener-job2", Category: "Gardening & Landscaping",
			District: "Gasabo", Salary: 4000, Status: job.StatusClosed,
		}).Error).To(Succeed())

		Expect(db.Create(&application.Application{
			ID: "app-1", UserID: "user-1", JobID: "job-1", Status: application.StatusAccepted,
		}).Error).To(Succeed())
		Expect(db.Create(&application.Application{
			ID: "app-2", UserID: "user-1", JobID: "job-2", Status: application.StatusPending,
		}).Error).To(Succeed())
		Expect(db.Create(&application.Application{
			ID: "app-3", UserID: "user-2", JobID: "job-1", Status: application.StatusPending,
		}).Error).To(Succeed())

		Expect(db.Create(&worksession.WorkSession{
			ID: "session-1", UserID: "user-1", JobID: "job-1", EmployerID: "employer-1", DailyPayment: 5000,
		}).Error).To(Succeed())
		Expect(db.Create(&worksession.WorkSession{
			ID: "session-2", UserID: "user-1", JobID: "job-2", EmployerID: "employer-1", DailyPayment: 4000,
		}).Error).To(Succeed())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Stats", func() {
		It("should count every entity", func() {
			stats, err := repo.Stats()

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalUsers).To(Equal(int64(2)))
			Expect(stats.TotalEmployers).To(Equal(int64(1)))
			Expect(stats.TotalJobs).To(Equal(int64(2)))
			Expect(stats.ActiveJobs).To(Equal(int64(1)))
			Expect(stats.TotalApplications).To(Equal(int64(3)))
			Expect(stats.PendingApplications).To(Equal(int64(2)))
		})
	})

	Describe("DeleteUserCascade", func() {
		It("should remove the user's applications and sessions, leaving others", func() {
			Expect(repo.DeleteUserCascade("user-1")).To(Succeed())

			Expect(count(&principal.User{}, "")).To(Equal(int64(1)))
			Expect(count(&application.Application{}, "")).To(Equal(int64(1)))
			Expect(count(&application.Application{}, "user_id = ?", "user-2")).To(Equal(int64(1)))
			Expect(count(&worksession.WorkSession{}, "")).To(BeZero())
			Expect(count(&job.Job{}, "")).To(Equal(int64(2)))
		})

		It("should return not found for an unknown user", func() {
			Expect(repo.DeleteUserCascade("missing")).To(MatchError(principal.ErrNotFound))
		})
	})

	Describe("DeleteEmployerCascade", func() {
		It("should remove the employer with all jobs, applications and sessions", func() {
			Expect(repo.DeleteEmployerCascade("employer-1")).To(Succeed())

			Expect(count(&principal.Employer{}, "")).To(BeZero())
			Expect(count(&job.Job{}, "")).To(BeZero())
			Expect(count(&application.Application{}, "")).To(BeZero())
			Expect(count(&worksession.WorkSession{}, "")).To(BeZero())
			Expect(count(&principal.User{}, "")).To(Equal(int64(2)))
		})

		It("should return not found for an unknown employer", func() {
			Expect(repo.DeleteEmployerCascade("missing")).To(MatchError(principal.ErrNotFound))
		})
	})

	Describe("DeleteJobCascade", func() {
		It("should remove one job with its applications and sessions only", func() {
			Expect(repo.DeleteJobCascade("job-1")).To(Succeed())

			Expect(count(&job.Job{}, "")).To(Equal(int64(1)))
			Expect(count(&application.Application{}, "")).To(Equal(int64(1)))
			Expect(count(&application.Application{}, "job_id = ?", "job-2")).To(Equal(int64(1)))
			Expect(count(&worksession.WorkSession{}, "")).To(Equal(int64(1)))
			Expect(count(&worksession.WorkSession{}, "job_id = ?", "job-2")).To(Equal(int64(1)))
		})

		It("should return not found for an unknown job", func() {
			Expect(repo.DeleteJobCascade("missing")).To(MatchError(job.ErrJobNotFound))
		})
	})

	Describe("UpdateJobStatus", func() {
		It("should flip the status", func() {
			Expect(repo.UpdateJobStatus("job-1", job.StatusClosed)).To(Succeed())
			Expect(count(&job.Job{}, "status = ?", job.StatusActive)).To(BeZero())
		})

		It("should return not found for an unknown job", func() {
			Expect(repo.UpdateJobStatus("missing", job.StatusClosed)).To(MatchError(job.ErrJobNotFound))
		})
	})

	Describe("Listings", func() {
		It("should page jobs with an optional status filter", func() {
			jobs, err := repo.ListJobs("", 0, 20)
			Expect(err).NotTo(HaveOccurred())
			Expect(jobs).To(HaveLen(2))

			active, err := repo.ListJobs(job.StatusActive, 0, 20)
			Expect(err).NotTo(HaveOccurred())
			Expect(active).To(HaveLen(1))
			Expect(active[0].ID).To(Equal("job-1"))
		})

		It("should page users and employers", func() {
			users, err := repo.ListUsers(0, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(1))

			employers, err := repo.ListEmployers(0, 20)
			Expect(err).NotTo(HaveOccurred())
			Expect(employers).To(HaveLen(1))
		})
	})
})
