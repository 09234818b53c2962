package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"presensiku_backend/internals/features/attendance/presensi/controller"
	"presensiku_backend/internals/features/attendance/presensi/repository"
	"presensiku_backend/internals/features/attendance/presensi/service"
	helperOSS "presensiku_backend/internals/helpers/oss"
	"presensiku_backend/internals/middlewares/auth"
)

// PresensiRoutes mendaftarkan endpoint /api/attendance.
// Blob service opsional: tanpa kredensial OSS server tetap jalan, foto bukti
// saja yang tidak tersimpan.
func PresensiRoutes(app *fiber.App, db *gorm.DB) {
	var blob helperOSS.BlobService
	if oss, err := helperOSS.NewOSSBlobServiceFromEnv(""); err != nil {
		log.Printf("[WARN] OSS tidak dikonfigurasi, upload foto bukti dinonaktifkan: %v", err)
	} else {
		blob = oss
	}

	repo := repository.NewPresensiRepository(db)
	svc := service.NewPresensiService(repo, blob)
	ctl := controller.NewPresensiController(svc, repo, blob)

	api := app.Group("/api/attendance", auth.AuthMiddleware(db))

	api.Post("/check-in", ctl.CheckIn)
	api.Post("/check-out", ctl.CheckOut)

	admin := api.Group("", auth.IsAdmin("Presensi"))
	admin.Get("", ctl.GetAll)
	admin.Put("/:id", ctl.Update)
	admin.Delete("/:id", ctl.Delete)
}
