package service

import (
	"context"
	"math"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"presensiku_backend/internals/features/attendance/presensi/dto"
	"presensiku_backend/internals/features/attendance/presensi/model"
	"presensiku_backend/internals/features/attendance/presensi/repository"
	helper "presensiku_backend/internals/helpers"
	helperOSS "presensiku_backend/internals/helpers/oss"
)

/* ===================== FAKE REPO ===================== */

// fakeRepo: store in-memory dengan aturan yang sama seperti partial unique
// index di Postgres (maksimal satu baris aktif per user).
type fakeRepo struct {
	rows map[uuid.UUID]*model.PresensiModel

	completeErr error // paksa error di CompleteCheckOut (simulasi race)
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[uuid.UUID]*model.PresensiModel{}}
}

func (f *fakeRepo) CreateCheckIn(ctx context.Context, row *model.PresensiModel) error {
	for _, r := range f.rows {
		if r.PresensiUserID == row.PresensiUserID && r.PresensiCheckOut == nil {
			return repository.ErrActiveSessionExists
		}
	}
	row.PresensiID = uuid.New()
	f.rows[row.PresensiID] = row
	return nil
}

func (f *fakeRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*model.PresensiModel, error) {
	for _, r := range f.rows {
		if r.PresensiUserID == userID && r.PresensiCheckOut == nil {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrPresensiNotFound
}

func (f *fakeRepo) CompleteCheckOut(ctx context.Context, id uuid.UUID, at time.Time, lat, lng *float64, fotoURL *string) (*model.PresensiModel, error) {
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	r, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrPresensiNotFound
	}
	if r.PresensiCheckOut != nil {
		return nil, repository.ErrAlreadyCheckedOut
	}
	if at.Before(r.PresensiCheckIn) {
		return nil, repository.ErrCheckOutBeforeIn
	}
	r.PresensiCheckOut = &at
	r.PresensiLatitudeOut = lat
	r.PresensiLongitudeOut = lng
	r.PresensiFotoKeluarURL = fotoURL
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PresensiModel, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrPresensiNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrPresensiNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) ListAll(ctx context.Context, _ repository.ListFilter, _ helper.Params) ([]model.PresensiWithUser, int64, error) {
	var rows []model.PresensiWithUser
	for _, r := range f.rows {
		rows = append(rows, model.PresensiWithUser{PresensiModel: *r})
	}
	return rows, int64(len(rows)), nil
}

func (f *fakeRepo) Update(ctx context.Context, id uuid.UUID, _ *dto.UpdatePresensiRequest) (*model.PresensiModel, error) {
	return f.FindByID(ctx, id)
}

/* ===================== HELPERS ===================== */

func newTestService(repo repository.PresensiRepository, blob helperOSS.BlobService) *PresensiService {
	return &PresensiService{
		Repo: repo,
		Blob: blob,
		Policy: GeofencePolicy{
			RequireLocation: true,
			GeofenceEnabled: true,
			RadiusMeter:     100,
		},
		Now: func() time.Time {
			return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
		},
	}
}

func ptr(v float64) *float64 { return &v }

var dummyFoto = &multipart.FileHeader{Filename: "bukti.jpg"}

/* ===================== CHECK-IN ===================== */

func TestCheckInSuccess(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	userID := uuid.New()

	row, err := svc.CheckIn(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)
	assert.Equal(t, userID, row.PresensiUserID)
	assert.True(t, row.IsActive())
	assert.Equal(t, -6.2, *row.PresensiLatitudeIn)

	active, err := repo.FindActiveByUser(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, row.PresensiID, active.PresensiID)
}

func TestCheckInTwiceConflict(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	userID := uuid.New()

	_, err := svc.CheckIn(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCheckInMissingCoordinates(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	_, err := svc.CheckIn(context.Background(), uuid.New(), nil, nil, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckInInvalidCoordinates(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	_, err := svc.CheckIn(context.Background(), uuid.New(), ptr(95), ptr(106.8), nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CheckIn(context.Background(), uuid.New(), ptr(math.NaN()), ptr(106.8), nil)
	assert.ErrorIs(t, err, ErrValidation)
}

// Foto yang telanjur terunggah harus dihapus saat transisi gagal.
func TestCheckInConflictCompensatesUploadedPhoto(t *testing.T) {
	repo := newFakeRepo()
	mock := &helperOSS.MockBlobService{
		UploadProofPhotoFn: func(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
			return "https://cdn.example.com/presensi/checkin/bukti.webp", nil
		},
	}
	svc := newTestService(repo, mock)
	userID := uuid.New()

	_, err := svc.CheckIn(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), userID, ptr(-6.2), ptr(106.8), dummyFoto)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, []string{"https://cdn.example.com/presensi/checkin/bukti.webp"}, mock.Deleted)
}

// Kunci harian mengikuti zona Jakarta, bukan zona server: 20:00 UTC masih
// 10 Maret di UTC tapi sudah 11 Maret di WIB.
func TestCheckInDayKeyFollowsJakarta(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC) }

	row, err := svc.CheckIn(context.Background(), uuid.New(), ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)
	assert.Equal(t, "2025-03-11", time.Time(row.PresensiTanggal).Format("2006-01-02"))
}

/* ===================== CHECK-OUT ===================== */

func TestCheckOutWithoutActiveSession(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	_, err := svc.CheckOut(context.Background(), uuid.New(), ptr(-6.2), ptr(106.8), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckOutSuccess(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	userID := uuid.New()

	_, err := svc.CheckIn(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)

	// check-out satu jam kemudian, masih di titik yang sama
	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	row, err := svc.CheckOut(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)
	assert.False(t, row.IsActive())
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), *row.PresensiCheckOut)

	// sesi sudah tertutup, check-in baru boleh lagi
	_, err = svc.CheckIn(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)
}

func TestCheckOutOutsideGeofence(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	userID := uuid.New()

	_, err := svc.CheckIn(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)

	// Bandung, jauh di luar radius 100 m
	_, err = svc.CheckOut(context.Background(), userID, ptr(-6.9025), ptr(107.6186), nil)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// sesi tetap aktif
	active, err := repo.FindActiveByUser(context.Background(), userID)
	assert.NoError(t, err)
	assert.True(t, active.IsActive())
}

func TestCheckOutGeofenceDisabled(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	svc.Policy.GeofenceEnabled = false
	userID := uuid.New()

	_, err := svc.CheckIn(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)

	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC) }
	row, err := svc.CheckOut(context.Background(), userID, ptr(-6.9025), ptr(107.6186), nil)
	assert.NoError(t, err)
	assert.False(t, row.IsActive())
}

// Geofence aktif tetap mewajibkan koordinat meski RequireLocation dimatikan —
// jarak tidak bisa dihitung tanpa posisi check-out.
func TestCheckOutGeofenceOnlyStillRequiresCoordinates(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	svc.Policy.RequireLocation = false
	userID := uuid.New()

	_, err := svc.CheckIn(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), userID, nil, nil, nil)
	assert.ErrorIs(t, err, ErrValidation)

	// dengan koordinat, geofence tetap dievaluasi
	_, err = svc.CheckOut(context.Background(), userID, ptr(-6.9025), ptr(107.6186), nil)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

// Hapus catatan satu user tidak boleh menyentuh sesi aktif user lain,
// dan baris yang dihapus hilang dari listing berikutnya.
func TestDeleteRecordDoesNotAffectOtherUsers(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()
	userA := uuid.New()
	userB := uuid.New()

	rowA, err := svc.CheckIn(ctx, userA, ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)
	rowB, err := svc.CheckIn(ctx, userB, ptr(-6.21), ptr(106.81), nil)
	assert.NoError(t, err)

	assert.NoError(t, repo.DeleteByID(ctx, rowA.PresensiID))

	// listing tidak memuat baris yang dihapus
	rows, total, err := repo.ListAll(ctx, repository.ListFilter{}, helper.Params{Page: 1, PerPage: 50})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, total)
	for _, r := range rows {
		assert.NotEqual(t, rowA.PresensiID, r.PresensiID)
	}

	// sesi aktif user B tidak tersentuh
	active, err := repo.FindActiveByUser(ctx, userB)
	assert.NoError(t, err)
	assert.Equal(t, rowB.PresensiID, active.PresensiID)
	assert.True(t, active.IsActive())

	// user A kehilangan sesi aktifnya dan boleh check-in lagi
	_, err = repo.FindActiveByUser(ctx, userA)
	assert.ErrorIs(t, err, repository.ErrPresensiNotFound)
	_, err = svc.CheckIn(ctx, userA, ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)
}

func TestCheckOutCorruptStoredCoordinates(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	userID := uuid.New()

	// baris aktif dengan koordinat check-in korup (langsung lewat repo)
	err := repo.CreateCheckIn(context.Background(), &model.PresensiModel{
		PresensiUserID:      userID,
		PresensiCheckIn:     time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC),
		PresensiLatitudeIn:  ptr(math.NaN()),
		PresensiLongitudeIn: ptr(106.8),
	})
	assert.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.ErrorIs(t, err, ErrDataIntegrity)
}

func TestCheckOutBeforeCheckInRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	userID := uuid.New()

	_, err := svc.CheckIn(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)

	// jam server mundur (mis. koreksi NTP ekstrem)
	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC) }
	_, err = svc.CheckOut(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckOutRequiresPhotoWhenBlobConfigured(t *testing.T) {
	repo := newFakeRepo()
	mock := &helperOSS.MockBlobService{
		UploadProofPhotoFn: func(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
			return "https://cdn.example.com/presensi/checkout/bukti.webp", nil
		},
	}
	svc := newTestService(repo, mock)
	userID := uuid.New()

	_, err := svc.CheckIn(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.ErrorIs(t, err, ErrValidation)

	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	row, err := svc.CheckOut(context.Background(), userID, ptr(-6.2), ptr(106.8), dummyFoto)
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/presensi/checkout/bukti.webp", *row.PresensiFotoKeluarURL)
}

// Race dua check-out: pemenang kedua dapat Conflict, dan fotonya dikompensasi.
func TestCheckOutRaceCompensatesPhoto(t *testing.T) {
	repo := newFakeRepo()
	mock := &helperOSS.MockBlobService{
		UploadProofPhotoFn: func(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
			return "https://cdn.example.com/presensi/checkout/bukti.webp", nil
		},
	}
	svc := newTestService(repo, mock)
	userID := uuid.New()

	_, err := svc.CheckIn(context.Background(), userID, ptr(-6.2), ptr(106.8), nil)
	assert.NoError(t, err)

	repo.completeErr = repository.ErrAlreadyCheckedOut
	_, err = svc.CheckOut(context.Background(), userID, ptr(-6.2), ptr(106.8), dummyFoto)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, mock.Deleted, "https://cdn.example.com/presensi/checkout/bukti.webp")
}
