package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PresensiModel merepresentasikan satu sesi kehadiran (check-in → check-out).
// Baris dengan PresensiCheckOut == nil adalah sesi yang masih aktif; maksimal
// satu per user, ditegakkan oleh partial unique index uq_presensi_active_per_user
// (lihat databases.Migrate).
type PresensiModel struct {
	PresensiID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:presensi_id" json:"presensi_id"`
	PresensiUserID uuid.UUID `gorm:"type:uuid;not null;index;column:presensi_user_id" json:"presensi_user_id"`

	// Kunci harian — diisi dari tanggal check-in (zona Jakarta)
	PresensiTanggal datatypes.Date `gorm:"type:date;not null;index;column:presensi_tanggal" json:"presensi_tanggal"`

	PresensiCheckIn  time.Time  `gorm:"not null;column:presensi_check_in" json:"presensi_check_in"`
	PresensiCheckOut *time.Time `gorm:"column:presensi_check_out" json:"presensi_check_out,omitempty"`

	PresensiLatitudeIn   *float64 `gorm:"type:decimal(10,8);column:presensi_latitude_in" json:"presensi_latitude_in,omitempty"`
	PresensiLongitudeIn  *float64 `gorm:"type:decimal(11,8);column:presensi_longitude_in" json:"presensi_longitude_in,omitempty"`
	PresensiLatitudeOut  *float64 `gorm:"type:decimal(10,8);column:presensi_latitude_out" json:"presensi_latitude_out,omitempty"`
	PresensiLongitudeOut *float64 `gorm:"type:decimal(11,8);column:presensi_longitude_out" json:"presensi_longitude_out,omitempty"`

	PresensiFotoMasukURL  *string `gorm:"column:presensi_foto_masuk_url" json:"presensi_foto_masuk_url,omitempty"`
	PresensiFotoKeluarURL *string `gorm:"column:presensi_foto_keluar_url" json:"presensi_foto_keluar_url,omitempty"`

	PresensiCreatedAt time.Time  `gorm:"column:presensi_created_at;autoCreateTime" json:"presensi_created_at"`
	PresensiUpdatedAt *time.Time `gorm:"column:presensi_updated_at;autoUpdateTime" json:"presensi_updated_at,omitempty"`
}

func (PresensiModel) TableName() string { return "presensi" }

// IsActive: check-in sudah ada, check-out belum.
func (p *PresensiModel) IsActive() bool { return p.PresensiCheckOut == nil }

// PresensiWithUser adalah baris presensi plus nama user hasil join
// (dipakai listing admin & laporan harian).
type PresensiWithUser struct {
	PresensiModel
	Nama string `gorm:"column:nama" json:"nama"`
}
