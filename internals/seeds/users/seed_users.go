package users

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	regionModel "personel_backend/internals/features/regions/model"
	authService "personel_backend/internals/features/users/auth/service"
	"personel_backend/internals/features/users/user/model"
)

type UserSeed struct {
	UserName   string `json:"user_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	RegionName string `json:"region_name"`
}

// SeedUsersFromJSON inserts missing users. A region_name that does not
// exist yet is created on the fly; existing emails are skipped.
func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("[SEED] reading users file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("[SEED] skip users: %v", err)
		return
	}
	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("[SEED] decode %s: %v", filePath, err)
	}

	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))
		var existing model.UserModel
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			log.Printf("[SEED] user %q exists, skipped", email)
			continue
		}

		hashed, err := authService.HashPassword(data.Password)
		if err != nil {
			log.Printf("[SEED] user %q: %v", email, err)
			continue
		}

		u := model.UserModel{
			UserName: strings.TrimSpace(data.UserName),
			Email:    email,
			Password: hashed,
			Role:     data.Role,
			IsActive: true,
		}
		if name := strings.TrimSpace(data.RegionName); name != "" {
			region, err := ensureRegion(db, name)
			if err != nil {
				log.Printf("[SEED] region %q: %v", name, err)
				continue
			}
			u.RegionID = &region.RegionID
		}

		if err := db.Create(&u).Error; err != nil {
			log.Printf("[SEED] insert user %q: %v", email, err)
		} else {
			log.Printf("[SEED] inserted user %q role=%s", email, u.Role)
		}
	}
}

func ensureRegion(db *gorm.DB, name string) (*regionModel.RegionModel, error) {
	var r regionModel.RegionModel
	err := db.Where("region_name = ?", name).First(&r).Error
	if err == nil {
		return &r, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	r = regionModel.RegionModel{RegionName: name, RegionIsActive: true}
	if err := db.Create(&r).Error; err != nil {
		return nil, err
	}
	log.Printf("[SEED] created region %q", name)
	return &r, nil
}
