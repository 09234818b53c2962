package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"presensiku_backend/internals/features/attendance/presensi/repository"
	"presensiku_backend/internals/features/attendance/reports/controller"
	"presensiku_backend/internals/middlewares/auth"
)

// ReportRoutes mendaftarkan endpoint /api/reports.
// Cukup login; laporan harian tidak dibatasi admin.
func ReportRoutes(app *fiber.App, db *gorm.DB) {
	ctl := controller.NewReportController(repository.NewPresensiRepository(db))

	api := app.Group("/api/reports", auth.AuthMiddleware(db))
	api.Get("/daily", ctl.Daily)
}
