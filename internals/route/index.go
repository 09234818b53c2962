package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "presensiku_backend/internals/features/users/auth/route"

	presensiRoute "presensiku_backend/internals/features/attendance/presensi/route"
	reportRoute "presensiku_backend/internals/features/attendance/reports/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// ===================== PRESENSI =====================
	log.Println("[INFO] Setting up PresensiRoutes...")
	presensiRoute.PresensiRoutes(app, db)

	log.Println("[INFO] Setting up ReportRoutes...")
	reportRoute.ReportRoutes(app, db)
}
