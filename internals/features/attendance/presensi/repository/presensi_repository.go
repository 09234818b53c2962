package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"presensiku_backend/internals/features/attendance/presensi/dto"
	"presensiku_backend/internals/features/attendance/presensi/model"
	helper "presensiku_backend/internals/helpers"
)

/* ===================== ERRORS ===================== */

var (
	// user masih punya sesi dengan check_out NULL
	ErrActiveSessionExists = errors.New("presensi aktif sudah ada")
	ErrPresensiNotFound    = errors.New("catatan presensi tidak ditemukan")
	ErrAlreadyCheckedOut   = errors.New("presensi sudah di-check-out")
	ErrCheckOutBeforeIn    = errors.New("waktu check-out sebelum check-in")
)

/* ===================== FILTER ===================== */

// ListFilter untuk listing admin & laporan harian.
type ListFilter struct {
	Nama        string     // substring nama user, case-insensitive
	Tanggal     *time.Time // kunci harian (presensi_tanggal = tanggal)
	CheckInFrom *time.Time // rentang atas presensi_check_in
	CheckInTo   *time.Time
}

/* ===================== INTERFACE ===================== */

// PresensiRepository adalah store durable untuk baris presensi.
// Semua operasi menerima context dari request (timeout guard di main).
type PresensiRepository interface {
	CreateCheckIn(ctx context.Context, row *model.PresensiModel) error
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*model.PresensiModel, error)
	CompleteCheckOut(ctx context.Context, id uuid.UUID, at time.Time, lat, lng *float64, fotoURL *string) (*model.PresensiModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.PresensiModel, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context, f ListFilter, p helper.Params) ([]model.PresensiWithUser, int64, error)
	Update(ctx context.Context, id uuid.UUID, changes *dto.UpdatePresensiRequest) (*model.PresensiModel, error)
}

/* ===================== GORM IMPL ===================== */

type presensiRepository struct {
	db *gorm.DB
}

func NewPresensiRepository(db *gorm.DB) PresensiRepository {
	return &presensiRepository{db: db}
}

// CreateCheckIn: insert polos. Atomisitas "maksimal satu sesi aktif per user"
// dijamin partial unique index uq_presensi_active_per_user, bukan oleh
// check-then-create di application code — dua request paralel tidak bisa
// dua-duanya lolos.
func (r *presensiRepository) CreateCheckIn(ctx context.Context, row *model.PresensiModel) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrActiveSessionExists
		}
		return err
	}
	return nil
}

// FindActiveByUser: baris dengan check_out NULL milik user. Kalau anomali data
// menghasilkan lebih dari satu kandidat, ambil check-in terbaru.
func (r *presensiRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*model.PresensiModel, error) {
	var row model.PresensiModel
	err := r.db.WithContext(ctx).
		Where("presensi_user_id = ? AND presensi_check_out IS NULL", userID).
		Order("presensi_check_in DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPresensiNotFound
		}
		return nil, err
	}
	return &row, nil
}

// CompleteCheckOut: transaksi dengan row lock supaya dua check-out paralel
// tidak sama-sama menulis.
func (r *presensiRepository) CompleteCheckOut(ctx context.Context, id uuid.UUID, at time.Time, lat, lng *float64, fotoURL *string) (*model.PresensiModel, error) {
	var row model.PresensiModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("presensi_id = ?", id).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPresensiNotFound
			}
			return err
		}

		if row.PresensiCheckOut != nil {
			return ErrAlreadyCheckedOut
		}
		if at.Before(row.PresensiCheckIn) {
			return ErrCheckOutBeforeIn
		}

		updates := map[string]interface{}{
			"presensi_check_out": at,
		}
		if lat != nil {
			updates["presensi_latitude_out"] = *lat
		}
		if lng != nil {
			updates["presensi_longitude_out"] = *lng
		}
		if fotoURL != nil {
			updates["presensi_foto_keluar_url"] = *fotoURL
		}

		if err := tx.Model(&model.PresensiModel{}).
			Where("presensi_id = ?", id).
			Updates(updates).Error; err != nil {
			return err
		}

		row.PresensiCheckOut = &at
		row.PresensiLatitudeOut = lat
		row.PresensiLongitudeOut = lng
		row.PresensiFotoKeluarURL = fotoURL
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *presensiRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PresensiModel, error) {
	var row model.PresensiModel
	if err := r.db.WithContext(ctx).
		Where("presensi_id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPresensiNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *presensiRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("presensi_id = ?", id).
		Delete(&model.PresensiModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPresensiNotFound
	}
	return nil
}

var listSortWhitelist = map[string]string{
	"check_in":   "presensi.presensi_check_in",
	"check_out":  "presensi.presensi_check_out",
	"tanggal":    "presensi.presensi_tanggal",
	"created_at": "presensi.presensi_created_at",
	"nama":       "users.nama",
}

// ListAll: join users untuk nama; filter nama (ILIKE substring), kunci harian,
// dan rentang waktu check-in.
func (r *presensiRepository) ListAll(ctx context.Context, f ListFilter, p helper.Params) ([]model.PresensiWithUser, int64, error) {
	q := r.db.WithContext(ctx).
		Table("presensi").
		Select("presensi.*, users.nama AS nama").
		Joins("JOIN users ON users.id = presensi.presensi_user_id")

	if s := strings.TrimSpace(f.Nama); s != "" {
		q = q.Where("users.nama ILIKE ?", "%"+s+"%")
	}
	if f.Tanggal != nil {
		q = q.Where("presensi.presensi_tanggal = ?", f.Tanggal.Format("2006-01-02"))
	}
	if f.CheckInFrom != nil {
		q = q.Where("presensi.presensi_check_in >= ?", *f.CheckInFrom)
	}
	if f.CheckInTo != nil {
		q = q.Where("presensi.presensi_check_in <= ?", *f.CheckInTo)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, err := p.SafeOrderClause(listSortWhitelist, "check_in")
	if err != nil {
		order = "presensi.presensi_check_in DESC"
	}

	var rows []model.PresensiWithUser
	if err := q.Order(order).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update: patch administratif — hanya field non-nil yang diterapkan.
// Jalur ini sengaja tidak memeriksa state machine (koreksi admin).
func (r *presensiRepository) Update(ctx context.Context, id uuid.UUID, changes *dto.UpdatePresensiRequest) (*model.PresensiModel, error) {
	updates := map[string]interface{}{}
	if changes.WaktuCheckIn != nil {
		updates["presensi_check_in"] = *changes.WaktuCheckIn
	}
	if changes.WaktuCheckOut != nil {
		updates["presensi_check_out"] = *changes.WaktuCheckOut
	}
	if changes.LatitudeIn != nil {
		updates["presensi_latitude_in"] = *changes.LatitudeIn
	}
	if changes.LongitudeIn != nil {
		updates["presensi_longitude_in"] = *changes.LongitudeIn
	}
	if changes.LatitudeOut != nil {
		updates["presensi_latitude_out"] = *changes.LatitudeOut
	}
	if changes.LongitudeOut != nil {
		updates["presensi_longitude_out"] = *changes.LongitudeOut
	}
	if changes.FotoMasukURL != nil {
		updates["presensi_foto_masuk_url"] = *changes.FotoMasukURL
	}
	if changes.FotoKeluarURL != nil {
		updates["presensi_foto_keluar_url"] = *changes.FotoKeluarURL
	}

	res := r.db.WithContext(ctx).
		Model(&model.PresensiModel{}).
		Where("presensi_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrPresensiNotFound
	}

	return r.FindByID(ctx, id)
}

// Deteksi unique violation Postgres (kode "23505")
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// string fallback (kompatibel untuk lib/pq & pgx yang dibungkus)
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "23505")
}
