package service

import "errors"

// Sentinel error untuk workflow presensi. Controller memetakan ke status HTTP
// lewat errors.Is, message untuk user dibungkus fiber.NewError di atasnya.
var (
	ErrValidation    = errors.New("validation")     // input tidak lengkap / tidak valid
	ErrConflict      = errors.New("conflict")       // state machine menolak transisi
	ErrNotFound      = errors.New("not found")      // catatan tidak ada
	ErrDataIntegrity = errors.New("data integrity") // data tersimpan korup
	ErrOutOfRange    = errors.New("out of range")   // di luar radius geofence
)

// kindError membawa message untuk user sambil tetap match errors.Is terhadap
// sentinel di atas.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func wrapErr(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}
