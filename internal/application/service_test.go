package application_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/worklink/worklink-backend/internal/application"
	"github.com/worklink/worklink-backend/internal/job"
)

func TestApplicationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ApplicationService Suite")
}

// Mock repository for testing
type mockApplicationRepository struct {
	applications map[string]*application.Application
	createError  error
	deleteError  error
	createCalls  int
}

func newMockApplicationRepository() *mockApplicationRepository {
	return &mockApplicationRepository{
		applications: make(map[string]*application.Application),
	}
}

func (m *mockApplicationRepository) Create(a *application.Application) error {
	m.createCalls++
	if m.createError != nil {
		return m.createError
	}
	m.applications[a.ID] = a
	return nil
}

func (m *mockApplicationRepository) GetByID(id string) (*application.Application, error) {
	a, ok := m.applications[id]
	if !ok {
		return nil, application.ErrNotFound
	}
	return a, nil
}

func (m *mockApplicationRepository) Exists(userID, jobID string) (bool, error) {
	for _, a := range m.applications {
		if a.UserID == userID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockApplicationRepository) ListByUser(userID string, filter application.ListFilter) ([]*application.Detail, error) {
	var out []*application.Detail
	for _, a := range m.applications {
		if a.UserID == userID {
			out = append(out, &application.Detail{Application: *a})
		}
	}
	return out, nil
}

func (m *mockApplicationRepository) ListByJob(jobID string, filter application.ListFilter) ([]*application.Detail, error) {
	var out []*application.Detail
	for _, a := range m.applications {
		if a.JobID == jobID {
			out = append(out, &application.Detail{Application: *a})
		}
	}
	return out, nil
}

func (m *mockApplicationRepository) UpdateStatus(id, status string) error {
	if a, ok := m.applications[id]; ok {
		a.Status = status
	}
	return nil
}

func (m *mockApplicationRepository) Delete(id string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.applications, id)
	return nil
}

// Mock job directory for testing
type mockJobDirectory struct {
	jobs map[string]*job.Job
}

func newMockJobDirectory() *mockJobDirectory {
	return &mockJobDirectory{jobs: make(map[string]*job.Job)}
}

func (m *mockJobDirectory) GetByID(id string) (*job.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound
	}
	return j, nil
}

var _ = Describe("ApplicationService", func() {
	var (
		service  *application.Service
		mockRepo *mockApplicationRepository
		mockJobs *mockJobDirectory
	)

	BeforeEach(func() {
		mockRepo = newMockApplicationRepository()
		mockJobs = newMockJobDirectory()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = application.NewService(mockRepo, mockJobs, logger)

		mockJobs.jobs["job-1"] = &job.Job{
			ID:         "job-1",
			EmployerID: "employer-1",
			Title:      "House cleaner needed",
			Status:     job.StatusActive,
		}
	})

	Describe("Apply", func() {
		It("should create a pending application", func() {
			result, err := service.Apply("user-1", application.CreateApplicationDTO{JobID: "job-1"})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).ToNot(BeEmpty())
			Expect(result.UserID).To(Equal("user-1"))
			Expect(result.JobID).To(Equal("job-1"))
			Expect(result.Status).To(Equal(application.StatusPending))
		})

		It("should return not found for an unknown job", func() {
			_, err := service.Apply("user-1", application.CreateApplicationDTO{JobID: "missing"})
			Expect(err).To(MatchError(job.ErrJobNotFound))
		})

		It("should reject when the deadline has passed without writing anything", func() {
			past := time.Now().Add(-time.Hour)
			mockJobs.jobs["job-1"].ApplicationDeadline = &past

			_, err := service.Apply("user-1", application.CreateApplicationDTO{JobID: "job-1"})

			Expect(err).To(MatchError(application.ErrDeadlinePassed))
			Expect(mockRepo.createCalls).To(BeZero())
		})

		It("should allow applying right before the deadline", func() {
			future := time.Now().Add(time.Hour)
			mockJobs.jobs["job-1"].ApplicationDeadline = &future

			_, err := service.Apply("user-1", application.CreateApplicationDTO{JobID: "job-1"})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should reject a second application for the same job", func() {
			_, err := service.Apply("user-1", application.CreateApplicationDTO{JobID: "job-1"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Apply("user-1", application.CreateApplicationDTO{JobID: "job-1"})
			Expect(err).To(MatchError(application.ErrDuplicate))
		})

		It("should require a job id", func() {
			_, err := service.Apply("user-1", application.CreateApplicationDTO{})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("job_id"))
		})
	})

	Describe("JobApplications", func() {
		It("should list applications for an owned job", func() {
			_, err := service.Apply("user-1", application.CreateApplicationDTO{JobID: "job-1"})
			Expect(err).ToNot(HaveOccurred())

			result, err := service.JobApplications("employer-1", "job-1", application.ListFilter{})
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
		})

		It("should reject another employer", func() {
			_, err := service.JobApplications("employer-2", "job-1", application.ListFilter{})
			Expect(err).To(MatchError(job.ErrNotJobOwner))
		})

		It("should return not found for an unknown job", func() {
			_, err := service.JobApplications("employer-1", "missing", application.ListFilter{})
			Expect(err).To(MatchError(job.ErrJobNotFound))
		})
	})

	Describe("UpdateStatus", func() {
		var applied *application.Application

		BeforeEach(func() {
			var err error
			applied, err = service.Apply("user-1", application.CreateApplicationDTO{JobID: "job-1"})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should move the application to accepted", func() {
			result, err := service.UpdateStatus("employer-1", applied.ID, application.UpdateStatusDTO{Status: application.StatusAccepted})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(application.StatusAccepted))
			Expect(mockRepo.applications[applied.ID].Status).To(Equal(application.StatusAccepted))
		})

		It("should reject a status outside the closed set", func() {
			_, err := service.UpdateStatus("employer-1", applied.ID, application.UpdateStatusDTO{Status: "shortlisted"})

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("status"))
			Expect(mockRepo.applications[applied.ID].Status).To(Equal(application.StatusPending))
		})

		It("should reject another employer", func() {
			_, err := service.UpdateStatus("employer-2", applied.ID, application.UpdateStatusDTO{Status: application.StatusAccepted})
			Expect(err).To(MatchError(job.ErrNotJobOwner))
		})

		It("should return not found for an unknown application", func() {
			_, err := service.UpdateStatus("employer-1", "missing", application.UpdateStatusDTO{Status: application.StatusAccepted})
			Expect(err).To(MatchError(application.ErrNotFound))
		})
	})

	Describe("Withdraw", func() {
		var applied *application.Application

		BeforeEach(func() {
			var err error
			applied, err = service.Apply("user-1", application.CreateApplicationDTO{JobID: "job-1"})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should delete a pending application", func() {
			Expect(service.Withdraw("user-1", applied.ID)).To(Succeed())
			Expect(mockRepo.applications).ToNot(HaveKey(applied.ID))
		})

		It("should allow withdrawing while reviewing", func() {
			applied.Status = application.StatusReviewing
			Expect(service.Withdraw("user-1", applied.ID)).To(Succeed())
		})

		It("should refuse once accepted", func() {
			applied.Status = application.StatusAccepted

			err := service.Withdraw("user-1", applied.ID)
			Expect(err).To(MatchError(application.ErrCannotWithdraw))
			Expect(mockRepo.applications).To(HaveKey(applied.ID))
		})

		It("should refuse once rejected", func() {
			applied.Status = application.StatusRejected
			Expect(service.Withdraw("user-1", applied.ID)).To(MatchError(application.ErrCannotWithdraw))
		})

		It("should reject another user", func() {
			Expect(service.Withdraw("user-2", applied.ID)).To(MatchError(application.ErrNotApplicant))
		})

		It("should surface repository errors", func() {
			mockRepo.deleteError = errors.New("database error")
			Expect(service.Withdraw("user-1", applied.ID)).To(MatchError(ContainSubstring("database error")))
		})
	})
})
