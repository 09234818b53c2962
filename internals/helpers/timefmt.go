package helper

import (
	"time"
)

// Zona waktu tampilan. Respons API lama memakai date-fns-tz dengan
// "Asia/Jakarta", format "yyyy-MM-dd HH:mm:ssXXX".
var jakartaLoc = mustLoadLocation("Asia/Jakarta")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// fallback statis kalau tzdata tidak tersedia di image
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

const wibLayout = "2006-01-02 15:04:05-07:00"

// InWIB mengonversi timestamp ke zona Jakarta (untuk kunci harian presensi).
func InWIB(t time.Time) time.Time {
	return t.In(jakartaLoc)
}

// FormatWIB memformat timestamp ke "yyyy-MM-dd HH:mm:ss+07:00" zona Jakarta.
func FormatWIB(t time.Time) string {
	return t.In(jakartaLoc).Format(wibLayout)
}

// FormatWIBPtr versi pointer; nil tetap nil (check-out yang belum terjadi).
func FormatWIBPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatWIB(*t)
	return &s
}

// FormatJamWIB untuk pesan "Check-in berhasil pada pukul 07:58:01 WIB".
func FormatJamWIB(t time.Time) string {
	return t.In(jakartaLoc).Format("15:04:05")
}
