package seeds

import (
	"gorm.io/gorm"

	"personel_backend/internals/configs"
	users "personel_backend/internals/seeds/users"
)

// RunAllSeeds is invoked from main when SEED=true.
func RunAllSeeds(db *gorm.DB) {
	//* User (+ regions referenced by name)
	users.SeedUsersFromJSON(db, configs.GetEnv("SEED_USERS_FILE", "internals/seeds/users/data_users.json"))
}
