package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/worklink/worklink-backend/internal/job"
	"github.com/worklink/worklink-backend/internal/principal"
)

// seedCmd loads a development data set: the platform admin, one employer,
// one worker and one job posting. Safe to run repeatedly; existing rows are
// left alone.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		now := time.Now().UTC()

		adminEmail := "admin@worklink.rw"
		var count int64
		gormDB.Model(&principal.Admin{}).Where("email = ?", adminEmail).Count(&count)
		if count == 0 {
			a := &principal.Admin{
				ID:           uuid.NewString(),
				FirstName:    "Platform",
				LastName:     "Admin",
				Email:        adminEmail,
				PasswordHash: string(hash),
				CreatedAt:    now,
			}
			if err := gormDB.Create(a).Error; err != nil {
				log.Fatalf("failed to seed admin: %v", err)
			}
			fmt.Println("Seeded admin:", adminEmail)
		} else {
			fmt.Println("admin already exists:", adminEmail)
		}

		employerEmail := "employer@worklink.rw"
		var employer principal.Employer
		err = gormDB.Where("email = ?", employerEmail).First(&employer).Error
		if err == gorm.ErrRecordNotFound {
			employer = principal.Employer{
				ID:           uuid.NewString(),
				FirstName:    "Claudine",
				LastName:     "Uwase",
				CompanyName:  "Kigali Home Services Ltd",
				PhoneNumber:  "+250788100200",
				Email:        employerEmail,
				District:     "Gasabo",
				PasswordHash: string(hash),
				CreatedAt:    now,
			}
			if err := gormDB.Create(&employer).Error; err != nil {
				log.Fatalf("failed to seed employer: %v", err)
			}
			fmt.Println("Seeded employer:", employerEmail)
		} else if err != nil {
			log.Fatalf("failed to look up employer: %v", err)
		} else {
			fmt.Println("employer already exists:", employerEmail)
		}

		userEmail := "worker@worklink.rw"
		gormDB.Model(&principal.User{}).Where("email = ?", userEmail).Count(&count)
		if count == 0 {
			u := &principal.User{
				ID:           uuid.NewString(),
				FirstName:    "Jean",
				LastName:     "Mugisha",
				PhoneNumber:  "+250788300400",
				Email:        userEmail,
				DateOfBirth:  time.Date(1995, 3, 14, 0, 0, 0, 0, time.UTC),
				District:     "Kicukiro",
				PasswordHash: string(hash),
				CreatedAt:    now,
			}
			if err := gormDB.Create(u).Error; err != nil {
				log.Fatalf("failed to seed user: %v", err)
			}
			fmt.Println("Seeded user:", userEmail)
		} else {
			fmt.Println("user already exists:", userEmail)
		}

		gormDB.Model(&job.Job{}).Where("employer_id = ?", employer.ID).Count(&count)
		if count == 0 {
			deadline := now.AddDate(0, 1, 0)
			j := job.NewJob(employer.ID, job.CreateJobDTO{
				Title:               "House cleaner needed in Gasabo",
				Description:         "Looking for an experienced cleaner for a family home, three days a week.",
				Category:            "Cleaning & Housekeeping",
				District:            "Gasabo",
				Salary:              5000,
				ApplicationDeadline: &deadline,
			})
			if err := gormDB.Create(j).Error; err != nil {
				log.Fatalf("failed to seed job: %v", err)
			}
			fmt.Println("Seeded job:", j.Slug)
		} else {
			fmt.Println("demo job already exists")
		}

		fmt.Println("Seeding complete")
	},
}
