package seed

import (
	"registry/config"
	"registry/internal/logger"
	. "registry/internal/models"
	"time"

	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	users := []User{
		{
			FirstName:   "Asha",
			LastName:    "Kulkarni",
			DisplayName: "Asha Kulkarni",
			Email:       stringPtr("asha.kulkarni@example.com"),
			Password:    "password",
			IsAdmin:     true,
		}, {
			FirstName:   "Ravi",
			LastName:    "Deshpande",
			DisplayName: "Ravi Deshpande",
			Email:       stringPtr("ravi.deshpande@example.com"),
			Password:    "password",
			IsAdmin:     true,
		},
	}

	for _, user := range users {
		var existingUser User
		if err := db.First(&existingUser, "email = ?", user.Email).Error; err == nil {
			log.Info("User already exists", "email", user.Email)
			continue
		}
		log.Info("Seeding user", "email", user.Email)
		if err := db.Create(&user).Error; err != nil {
			log.Er("failed to create user", err, "email", user.Email)
		}
	}

	profiles := []Profile{
		{
			Name:            "Aarav Sharma",
			Relation:        "Self",
			Dob:             "1990-04-12",
			Nakshatra:       "Rohini",
			Rashi:           "Vrishabh (Taurus)",
			ContactNumber:   "+91 98765 43210",
			Occupation:      "Engineer",
			Address:         "12 Shanti Nagar, Pune, Maharashtra",
			SubmitterName:   "Aarav Sharma",
			SubmitterMobile: "+91 98765 43210",
		}, {
			Name:            "Meera Sharma",
			Relation:        "Mother",
			Dob:             "1962-11-03",
			Nakshatra:       "Swati",
			Rashi:           "Tula (Libra)",
			Occupation:      "Homemaker",
			Address:         "12 Shanti Nagar, Pune, Maharashtra",
			SubmitterName:   "Aarav Sharma",
			SubmitterMobile: "+91 98765 43210",
		},
	}

	var count int64
	if err := db.Model(&Profile{}).Count(&count).Error; err == nil && count == 0 {
		for _, profile := range profiles {
			log.Info("Seeding profile", "name", profile.Name)
			if err := db.Create(&profile).Error; err != nil {
				log.Er("failed to create profile", err, "name", profile.Name)
			}
		}

		now := time.Now()
		session := SubmitterSession{
			SubmitterName:   "Aarav Sharma",
			SubmitterMobile: "+91 98765 43210",
			CreatedAt:       now,
			LastActiveAt:    now,
		}
		if err := db.Create(&session).Error; err != nil {
			log.Er("failed to create submitter session", err)
		}
	}

	return nil
}
