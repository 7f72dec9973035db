package job_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/worklink/worklink-backend/internal"
	"github.com/worklink/worklink-backend/internal/job"
	jobPostgres "github.com/worklink/worklink-backend/internal/job/postgres"
	"github.com/worklink/worklink-backend/internal/principal"
)

var _ = Describe("Job Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *job.Handler
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&principal.Employer{}, &job.Job{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&principal.Employer{
			ID:          "employer-1",
			CompanyName: "Kigali Home Services Ltd",
			PhoneNumber: "+250788100200",
			Email:       "hr@example.com",
			District:    "Gasabo",
		}).Error).To(Succeed())

		repo := jobPostgres.NewJobRepository(db)
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = job.NewHandler(job.NewService(repo, slogger))
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	asEmployer := func(req *http.Request) *http.Request {
		ctx := internal.ContextWithPrincipal(req.Context(), &internal.Principal{
			ID:   "employer-1",
			Kind: principal.KindEmployer,
		})
		return req.WithContext(ctx)
	}

	withURLParam := func(req *http.Request, key, value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, value)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	createJob := func() string {
		body := `{
			"title": "House cleaner needed",
			"description": "Cleaning a family home three days a week.",
			"category": "Cleaning & Housekeeping",
			"district": "Gasabo",
			"salary": 5000
		}`
		req := asEmployer(httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(body)))
		w := httptest.NewRecorder()

		handler.CreateJob(w, req)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created job.Job
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		return created.ID
	}

	It("should create a job and serve it back with the employer name", func() {
		id := createJob()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/jobs/"+id, nil), "jobID", id)
		w := httptest.NewRecorder()

		handler.GetJob(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var detail job.Detail
		Expect(json.NewDecoder(w.Body).Decode(&detail)).To(Succeed())
		Expect(detail.Title).To(Equal("House cleaner needed"))
		Expect(detail.EmployerName).To(Equal("Kigali Home Services Ltd"))
	})

	It("should return 404 for an unknown job", func() {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/jobs/missing", nil), "jobID", "missing")
		w := httptest.NewRecorder()

		handler.GetJob(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should list active jobs with pagination defaults", func() {
		createJob()

		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		w := httptest.NewRecorder()

		handler.ListJobs(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var response struct {
			Jobs  []job.Job `json:"jobs"`
			Skip  int       `json:"skip"`
			Limit int       `json:"limit"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Jobs).To(HaveLen(1))
		Expect(response.Skip).To(Equal(0))
		Expect(response.Limit).To(Equal(20))
	})

	It("should reject a search query shorter than two characters", func() {
		req := httptest.NewRequest(http.MethodGet, "/jobs/search?q=a", nil)
		w := httptest.NewRecorder()

		handler.SearchJobs(w, req)

		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
	})

	It("should reject a create with a validation problem", func() {
		body := `{"title": "Hi", "description": "short", "category": "x", "district": "y", "salary": 0}`
		req := asEmployer(httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(body)))
		w := httptest.NewRecorder()

		handler.CreateJob(w, req)

		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
	})

	It("should close an owned job and report 404 afterwards for updates by others", func() {
		id := createJob()

		req := asEmployer(withURLParam(httptest.NewRequest(http.MethodDelete, "/jobs/"+id, nil), "jobID", id))
		w := httptest.NewRecorder()

		handler.CloseJob(w, req)
		Expect(w.Code).To(Equal(http.StatusNoContent))

		var stored job.Job
		Expect(db.Where("id = ?", id).First(&stored).Error).To(Succeed())
		Expect(stored.Status).To(Equal(job.StatusClosed))
	})

	It("should serve the category and district catalogs", func() {
		w := httptest.NewRecorder()
		handler.ListCategories(w, httptest.NewRequest(http.MethodGet, "/jobs/categories/list", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		var categories []string
		Expect(json.NewDecoder(w.Body).Decode(&categories)).To(Succeed())
		Expect(categories).To(ContainElement("Cleaning & Housekeeping"))
	})
})
