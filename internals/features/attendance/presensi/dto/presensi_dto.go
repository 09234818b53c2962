package dto

import (
	"time"

	"github.com/go-playground/validator/v10"

	"presensiku_backend/internals/features/attendance/presensi/model"
	helper "presensiku_backend/internals/helpers"
)

var validate = validator.New()

/* ===================== REQUEST ===================== */

// CheckInRequest payload POST /api/attendance/check-in.
// Koordinat pointer supaya "tidak dikirim" bisa dibedakan dari 0.
// Tag form dipakai saat request multipart (foto bukti ikut naik).
type CheckInRequest struct {
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
}

// CheckOutRequest payload POST /api/attendance/check-out
type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
}

// UpdatePresensiRequest: patch admin — setiap field opsional dan hanya
// field non-nil yang diterapkan (field-by-field).
type UpdatePresensiRequest struct {
	WaktuCheckIn  *time.Time `json:"waktuCheckIn" validate:"omitempty"`
	WaktuCheckOut *time.Time `json:"waktuCheckOut" validate:"omitempty"`

	LatitudeIn   *float64 `json:"latitude_in" validate:"omitempty,gte=-90,lte=90"`
	LongitudeIn  *float64 `json:"longitude_in" validate:"omitempty,gte=-180,lte=180"`
	LatitudeOut  *float64 `json:"latitude_out" validate:"omitempty,gte=-90,lte=90"`
	LongitudeOut *float64 `json:"longitude_out" validate:"omitempty,gte=-180,lte=180"`

	FotoMasukURL  *string `json:"foto_masuk_url" validate:"omitempty,url"`
	FotoKeluarURL *string `json:"foto_keluar_url" validate:"omitempty,url"`
}

// IsEmpty: patch tanpa satu pun field bukanlah update.
func (r *UpdatePresensiRequest) IsEmpty() bool {
	return r.WaktuCheckIn == nil && r.WaktuCheckOut == nil &&
		r.LatitudeIn == nil && r.LongitudeIn == nil &&
		r.LatitudeOut == nil && r.LongitudeOut == nil &&
		r.FotoMasukURL == nil && r.FotoKeluarURL == nil
}

func (r *UpdatePresensiRequest) Validate() error {
	return validate.Struct(r)
}

/* ===================== RESPONSE ===================== */

// PresensiResponse: baris presensi dengan waktu terformat WIB
// ("yyyy-MM-dd HH:mm:ss+07:00"), kontrak yang sama dengan API lama.
type PresensiResponse struct {
	ID         string   `json:"id"`
	UserID     string   `json:"userId"`
	Tanggal    string   `json:"tanggal"`
	CheckIn    string   `json:"checkIn"`
	CheckOut   *string  `json:"checkOut"`
	LatIn      *float64 `json:"latitude_in,omitempty"`
	LngIn      *float64 `json:"longitude_in,omitempty"`
	LatOut     *float64 `json:"latitude_out,omitempty"`
	LngOut     *float64 `json:"longitude_out,omitempty"`
	FotoMasuk  *string  `json:"foto_masuk,omitempty"`
	FotoKeluar *string  `json:"foto_keluar,omitempty"`
}

// PresensiWithUserResponse menambahkan nama user (listing admin/laporan).
type PresensiWithUserResponse struct {
	PresensiResponse
	Nama string `json:"nama"`
}

func ToPresensiResponse(m *model.PresensiModel) PresensiResponse {
	return PresensiResponse{
		ID:         m.PresensiID.String(),
		UserID:     m.PresensiUserID.String(),
		Tanggal:    time.Time(m.PresensiTanggal).Format("2006-01-02"),
		CheckIn:    helper.FormatWIB(m.PresensiCheckIn),
		CheckOut:   helper.FormatWIBPtr(m.PresensiCheckOut),
		LatIn:      m.PresensiLatitudeIn,
		LngIn:      m.PresensiLongitudeIn,
		LatOut:     m.PresensiLatitudeOut,
		LngOut:     m.PresensiLongitudeOut,
		FotoMasuk:  m.PresensiFotoMasukURL,
		FotoKeluar: m.PresensiFotoKeluarURL,
	}
}

func ToPresensiWithUserResponse(row *model.PresensiWithUser) PresensiWithUserResponse {
	return PresensiWithUserResponse{
		PresensiResponse: ToPresensiResponse(&row.PresensiModel),
		Nama:             row.Nama,
	}
}

func ToPresensiWithUserResponses(rows []model.PresensiWithUser) []PresensiWithUserResponse {
	out := make([]PresensiWithUserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToPresensiWithUserResponse(&rows[i]))
	}
	return out
}
