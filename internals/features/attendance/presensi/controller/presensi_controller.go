package controller

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"presensiku_backend/internals/features/attendance/presensi/dto"
	"presensiku_backend/internals/features/attendance/presensi/repository"
	"presensiku_backend/internals/features/attendance/presensi/service"
	helper "presensiku_backend/internals/helpers"
	helperOSS "presensiku_backend/internals/helpers/oss"
)

type PresensiController struct {
	Service *service.PresensiService
	Repo    repository.PresensiRepository
	Blob    helperOSS.BlobService
}

func NewPresensiController(svc *service.PresensiService, repo repository.PresensiRepository, blob helperOSS.BlobService) *PresensiController {
	return &PresensiController{Service: svc, Repo: repo, Blob: blob}
}

/* ===================== CHECK-IN / CHECK-OUT ===================== */

// POST /api/attendance/check-in
func (ctl *PresensiController) CheckIn(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil && !helperOSS.IsMultipart(c) {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	foto, err := helperOSS.GetImageFile(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	row, err := ctl.Service.CheckIn(c.UserContext(), userID, req.Latitude, req.Longitude, foto)
	if err != nil {
		return ctl.workflowError(c, err)
	}

	msg := "Check-in berhasil pada pukul " + helper.FormatJamWIB(row.PresensiCheckIn) + " WIB"
	return helper.SuccessWithCode(c, fiber.StatusCreated, msg, dto.ToPresensiResponse(row))
}

// POST /api/attendance/check-out
func (ctl *PresensiController) CheckOut(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CheckOutRequest
	if err := c.BodyParser(&req); err != nil && !helperOSS.IsMultipart(c) {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	foto, err := helperOSS.GetImageFile(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	row, err := ctl.Service.CheckOut(c.UserContext(), userID, req.Latitude, req.Longitude, foto)
	if err != nil {
		return ctl.workflowError(c, err)
	}

	msg := "Check-out berhasil pada pukul " + helper.FormatJamWIB(*row.PresensiCheckOut) + " WIB"
	return helper.Success(c, msg, dto.ToPresensiResponse(row))
}

/* ===================== ADMIN ===================== */

// GET /api/attendance?nama=&tanggal=&from=&to=
func (ctl *PresensiController) GetAll(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "check_in", "desc", helper.AdminOpts)

	f := repository.ListFilter{
		Nama: strings.TrimSpace(c.Query("nama")),
	}
	if raw := strings.TrimSpace(c.Query("tanggal")); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Format tanggal harus YYYY-MM-DD")
		}
		f.Tanggal = &d
	}
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Format from harus RFC3339")
		}
		f.CheckInFrom = &t
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Format to harus RFC3339")
		}
		f.CheckInTo = &t
	}

	rows, total, err := ctl.Repo.ListAll(c.UserContext(), f, p)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil data presensi")
	}

	return helper.Success(c, "Data presensi berhasil diambil", fiber.Map{
		"data": dto.ToPresensiWithUserResponses(rows),
		"meta": helper.BuildMeta(total, p),
	})
}

// PUT /api/attendance/:id
func (ctl *PresensiController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdatePresensiRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if req.IsEmpty() {
		return helper.Error(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}
	if err := req.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctl.Repo.Update(c.UserContext(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrPresensiNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Catatan presensi tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui presensi")
	}

	return helper.Success(c, "Presensi berhasil diperbarui", dto.ToPresensiResponse(row))
}

// DELETE /api/attendance/:id
// Foto bukti ikut dihapus best-effort setelah baris terhapus.
func (ctl *PresensiController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	row, err := ctl.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPresensiNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Catatan presensi tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil data presensi")
	}

	if err := ctl.Repo.DeleteByID(c.UserContext(), id); err != nil {
		if errors.Is(err, repository.ErrPresensiNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Catatan presensi tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus presensi")
	}

	ctl.deletePhotos(c.UserContext(), row.PresensiFotoMasukURL, row.PresensiFotoKeluarURL)

	return c.SendStatus(fiber.StatusNoContent)
}

func (ctl *PresensiController) deletePhotos(ctx context.Context, urls ...*string) {
	if ctl.Blob == nil {
		return
	}
	for _, u := range urls {
		if u == nil || *u == "" {
			continue
		}
		if err := ctl.Blob.DeleteByPublicURL(ctx, *u); err != nil {
			log.Printf("[WARN] gagal menghapus foto %s: %v", *u, err)
		}
	}
}

// workflowError memetakan sentinel service ke status HTTP.
func (ctl *PresensiController) workflowError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrOutOfRange),
		errors.Is(err, service.ErrDataIntegrity):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.FromFiberError(c, err)
}
