package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"presensiku_backend/internals/features/attendance/presensi/model"
	"presensiku_backend/internals/features/attendance/presensi/repository"
	helper "presensiku_backend/internals/helpers"
	helperOSS "presensiku_backend/internals/helpers/oss"
)

const (
	dirFotoCheckIn  = "presensi/checkin"
	dirFotoCheckOut = "presensi/checkout"
)

// PresensiService menjalankan state machine check-in / check-out.
// Foto bukti diunggah ke blob store SEBELUM baris ditulis; kalau transisi
// gagal, foto yang telanjur terunggah dihapus (best-effort).
type PresensiService struct {
	Repo   repository.PresensiRepository
	Blob   helperOSS.BlobService
	Policy GeofencePolicy
	Now    func() time.Time
}

func NewPresensiService(repo repository.PresensiRepository, blob helperOSS.BlobService) *PresensiService {
	return &PresensiService{
		Repo:   repo,
		Blob:   blob,
		Policy: GeofencePolicyFromEnv(),
		Now:    time.Now,
	}
}

/* ===================== CHECK-IN ===================== */

func (s *PresensiService) CheckIn(ctx context.Context, userID uuid.UUID, lat, lng *float64, foto *multipart.FileHeader) (*model.PresensiModel, error) {
	if err := s.checkCoordinateInput(lat, lng, s.Policy.RequireLocation); err != nil {
		return nil, err
	}

	now := s.Now()

	fotoURL, err := s.uploadProof(ctx, dirFotoCheckIn, foto)
	if err != nil {
		return nil, err
	}

	row := &model.PresensiModel{
		PresensiUserID:       userID,
		PresensiTanggal:      datatypes.Date(helper.InWIB(now)),
		PresensiCheckIn:      now,
		PresensiLatitudeIn:   lat,
		PresensiLongitudeIn:  lng,
		PresensiFotoMasukURL: fotoURL,
	}

	if err := s.Repo.CreateCheckIn(ctx, row); err != nil {
		s.compensateUpload(ctx, fotoURL)
		if err == repository.ErrActiveSessionExists {
			return nil, wrapErr(ErrConflict, "Anda sudah melakukan check-in dan belum check-out.")
		}
		return nil, err
	}
	return row, nil
}

/* ===================== CHECK-OUT ===================== */

func (s *PresensiService) CheckOut(ctx context.Context, userID uuid.UUID, lat, lng *float64, foto *multipart.FileHeader) (*model.PresensiModel, error) {
	// Geofencing tidak ada artinya tanpa posisi check-out, jadi geofence
	// aktif ikut mewajibkan koordinat (dan foto bukti) meski
	// PRESENSI_REQUIRE_LOCATION dimatikan.
	needLocation := s.Policy.RequireLocation || s.Policy.GeofenceEnabled
	if err := s.checkCoordinateInput(lat, lng, needLocation); err != nil {
		return nil, err
	}
	// foto bukti wajib hanya kalau blob store memang terkonfigurasi
	if needLocation && s.Blob != nil && foto == nil {
		return nil, wrapErr(ErrValidation, "Foto bukti check-out wajib dilampirkan.")
	}

	active, err := s.Repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if err == repository.ErrPresensiNotFound {
			return nil, wrapErr(ErrNotFound, "Tidak ditemukan catatan check-in aktif untuk Anda.")
		}
		return nil, err
	}

	if err := s.checkGeofence(active, lat, lng); err != nil {
		return nil, err
	}

	now := s.Now()

	fotoURL, err := s.uploadProof(ctx, dirFotoCheckOut, foto)
	if err != nil {
		return nil, err
	}

	row, err := s.Repo.CompleteCheckOut(ctx, active.PresensiID, now, lat, lng, fotoURL)
	if err != nil {
		s.compensateUpload(ctx, fotoURL)
		switch err {
		case repository.ErrPresensiNotFound:
			return nil, wrapErr(ErrNotFound, "Catatan presensi tidak ditemukan.")
		case repository.ErrAlreadyCheckedOut:
			return nil, wrapErr(ErrConflict, "Anda sudah melakukan check-out untuk sesi ini.")
		case repository.ErrCheckOutBeforeIn:
			return nil, wrapErr(ErrValidation, "Waktu check-out tidak boleh sebelum waktu check-in.")
		}
		return nil, err
	}
	return row, nil
}

/* ===================== INTERNAL ===================== */

func (s *PresensiService) checkCoordinateInput(lat, lng *float64, required bool) error {
	if lat == nil || lng == nil {
		if required {
			return wrapErr(ErrValidation, "Latitude dan longitude wajib diisi.")
		}
		if lat != nil || lng != nil {
			return wrapErr(ErrValidation, "Latitude dan longitude harus dikirim berpasangan.")
		}
		return nil
	}
	if !validCoordinate(*lat, *lng) {
		return wrapErr(ErrValidation, "Koordinat tidak valid.")
	}
	return nil
}

// checkGeofence membandingkan posisi check-out dengan titik check-in.
// Sesi lama tanpa koordinat check-in dilewati (tidak bisa dievaluasi).
func (s *PresensiService) checkGeofence(active *model.PresensiModel, lat, lng *float64) error {
	if !s.Policy.GeofenceEnabled || lat == nil || lng == nil {
		return nil
	}
	if active.PresensiLatitudeIn == nil || active.PresensiLongitudeIn == nil {
		return nil
	}
	if !validCoordinate(*active.PresensiLatitudeIn, *active.PresensiLongitudeIn) {
		return wrapErr(ErrDataIntegrity, "Koordinat check-in pada catatan aktif tidak valid.")
	}

	dist := HaversineDistanceMeter(*active.PresensiLatitudeIn, *active.PresensiLongitudeIn, *lat, *lng)
	if dist > s.Policy.RadiusMeter {
		return wrapErr(ErrOutOfRange, fmt.Sprintf(
			"Anda berada %.0f meter dari lokasi check-in (maksimal %.0f meter).",
			dist, s.Policy.RadiusMeter,
		))
	}
	return nil
}

func (s *PresensiService) uploadProof(ctx context.Context, dir string, foto *multipart.FileHeader) (*string, error) {
	if foto == nil || s.Blob == nil {
		return nil, nil
	}
	url, err := s.Blob.UploadProofPhoto(ctx, dir, foto)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

// compensateUpload: hapus foto yang telanjur naik saat transisi gagal.
// Kegagalan hapus hanya dicatat, error asli tetap yang dikembalikan ke caller.
func (s *PresensiService) compensateUpload(ctx context.Context, fotoURL *string) {
	if fotoURL == nil || s.Blob == nil {
		return
	}
	if err := s.Blob.DeleteByPublicURL(ctx, *fotoURL); err != nil {
		log.Printf("[WARN] gagal menghapus foto kompensasi %s: %v", *fotoURL, err)
	}
}
