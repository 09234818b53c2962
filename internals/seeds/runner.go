package seeds

import (
	users "presensiku_backend/internals/seeds/users/auth"

	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB) {
	//* User (admin awal + akun demo)
	users.SeedUsersFromJSON(db, "internals/seeds/users/auth/data_users.json")
}
