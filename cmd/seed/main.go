package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"vetclinic/internal/access"
	"vetclinic/internal/config"
	"vetclinic/internal/database"
	"vetclinic/internal/domain/branch"
	"vetclinic/internal/domain/offer"
	"vetclinic/internal/domain/user"
	"vetclinic/internal/domain/vaccination"
	"vetclinic/internal/logger"
	"vetclinic/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.AppEnv)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("db connection failed")
	}
	if err := database.Migrate(db, server.Models()...); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	log.Info().Msg("cleaning old data")
	for _, table := range []string{
		"notification_recipients", "notifications", "consultations", "bookings",
		"offers", "vaccinations", "animals", "customers", "doctor_reviews", "users", "branches", "sequences",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Warn().Err(err).Str("table", table).Msg("cleanup skipped")
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		branches := []branch.Branch{
			{Name: "Riyadh Main", Location: "King Fahd Road", City: "Riyadh", Phone: "0112345678",
				WorkingHours: branch.WorkingHours{Start: "08:00", End: "16:00"}, Capacity: 2},
			{Name: "Qassim", Location: "Buraydah Industrial", City: "Buraydah", Phone: "0163456789",
				WorkingHours: branch.WorkingHours{Start: "07:00", End: "13:00"},
				WorkingDays:  []string{"saturday", "sunday", "monday", "tuesday", "wednesday", "thursday"}, Capacity: 1},
		}
		if err := tx.Create(&branches).Error; err != nil {
			return err
		}
		log.Info().Int("count", len(branches)).Msg("branches created")

		monthly := 12
		vaccinations := []vaccination.Vaccination{
			{NameAr: "طاعون المجترات الصغيرة", NameEn: "PPR", AnimalTypes: []string{"sheep", "goat"},
				Price: 15, Duration: 20, Frequency: vaccination.FrequencyAnnually},
			{NameAr: "الحمى القلاعية", NameEn: "Foot and Mouth Disease", AnimalTypes: []string{"cow", "sheep", "goat", "camel"},
				Price: 25, Duration: 30, Frequency: vaccination.FrequencyBiannually},
			{NameAr: "جدري الإبل", NameEn: "Camel Pox", AnimalTypes: []string{"camel"},
				Price: 60, Duration: 30, Frequency: vaccination.FrequencyCustom, FrequencyMonths: &monthly},
			{NameAr: "داء الكلب", NameEn: "Rabies", AnimalTypes: []string{vaccination.AllAnimals},
				Price: 80, Duration: 15, Frequency: vaccination.FrequencyOnce},
		}
		if err := tx.Create(&vaccinations).Error; err != nil {
			return err
		}
		log.Info().Int("count", len(vaccinations)).Msg("vaccinations created")

		type account struct {
			name, email, password, role string
			branchID                    *int64
			specialization              string
		}
		riyadh, qassim := branches[0].ID, branches[1].ID
		accounts := []account{
			{name: "Clinic Admin", email: "admin@vetclinic.sa", password: "admin123", role: access.RoleAdmin},
			{name: "Noura Reception", email: "staff@vetclinic.sa", password: "staff123", role: access.RoleStaff, branchID: &riyadh},
			{name: "Dr. Saleh", email: "saleh@vetclinic.sa", password: "doctor123", role: access.RoleDoctor, branchID: &riyadh, specialization: "Large animals"},
			{name: "Dr. Huda", email: "huda@vetclinic.sa", password: "doctor123", role: access.RoleDoctor, branchID: &qassim, specialization: "Camels"},
		}
		for _, a := range accounts {
			hash, err := user.HashPassword(a.password)
			if err != nil {
				return err
			}
			if err := tx.Create(&user.User{
				Name:           a.name,
				Email:          a.email,
				PasswordHash:   hash,
				Role:           a.role,
				BranchID:       a.branchID,
				Specialization: a.specialization,
			}).Error; err != nil {
				return err
			}
			log.Info().Str("email", a.email).Str("password", a.password).Str("role", a.role).Msg("user created")
		}

		loc := cfg.Location()
		today := time.Now().In(loc)
		limit := 100
		maxDiscount := 50.0
		offers := []offer.Offer{
			{Title: "Ramadan flock discount", DiscountType: offer.DiscountPercentage, DiscountValue: 20,
				StartDate: today.AddDate(0, 0, -1), EndDate: today.AddDate(0, 1, 0),
				UsageLimit: &limit, MinAmount: 100, MaxDiscount: &maxDiscount},
			{Title: "First visit", DiscountType: offer.DiscountFixed, DiscountValue: 10,
				StartDate: today.AddDate(0, 0, -1), EndDate: today.AddDate(0, 3, 0)},
		}
		if err := tx.Create(&offers).Error; err != nil {
			return err
		}
		log.Info().Int("count", len(offers)).Msg("offers created")
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Msg("seed completed")
}
