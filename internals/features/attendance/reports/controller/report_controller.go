package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	presensiDTO "presensiku_backend/internals/features/attendance/presensi/dto"
	"presensiku_backend/internals/features/attendance/presensi/repository"
	"presensiku_backend/internals/features/attendance/reports/dto"
	helper "presensiku_backend/internals/helpers"
)

// batas atas baris per laporan harian
const reportHardCap = 2000

type ReportController struct {
	Repo repository.PresensiRepository
}

func NewReportController(repo repository.PresensiRepository) *ReportController {
	return &ReportController{Repo: repo}
}

// dailyWindow menghitung jendela hari UTC [00:00Z, 24:00Z) untuk laporan.
// raw kosong berarti hari ini (UTC).
func dailyWindow(raw string, now time.Time) (from, to time.Time, err error) {
	day := now.UTC()
	if raw != "" {
		day, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	from = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to = from.Add(24*time.Hour - time.Nanosecond)
	return from, to, nil
}

// GET /api/reports/daily?nama=&tanggal=
func (ctl *ReportController) Daily(c *fiber.Ctx) error {
	from, to, err := dailyWindow(strings.TrimSpace(c.Query("tanggal")), time.Now())
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format tanggal harus YYYY-MM-DD")
	}

	f := repository.ListFilter{
		Nama:        strings.TrimSpace(c.Query("nama")),
		CheckInFrom: &from,
		CheckInTo:   &to,
	}
	p := helper.Params{
		Page:      1,
		PerPage:   reportHardCap,
		SortBy:    "check_in",
		SortOrder: "asc",
	}

	rows, total, err := ctl.Repo.ListAll(c.UserContext(), f, p)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyusun laporan harian")
	}

	return helper.Success(c, "Laporan harian berhasil diambil", dto.DailyReportResponse{
		ReportDate: from.Format("2006-01-02"),
		TotalData:  total,
		Data:       presensiDTO.ToPresensiWithUserResponses(rows),
	})
}
