package service

import (
	"math"

	"presensiku_backend/internals/configs"
)

// Radius bumi rata-rata (meter)
const earthRadiusMeter = 6371000.0

// HaversineDistanceMeter menghitung jarak great-circle antara dua koordinat
// dalam meter.
func HaversineDistanceMeter(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeter * c
}

// GeofencePolicy mengatur apakah koordinat wajib dan seberapa jauh dari titik
// acuan check-in masih diterima.
type GeofencePolicy struct {
	RequireLocation bool
	GeofenceEnabled bool
	RadiusMeter     float64
}

// GeofencePolicyFromEnv membaca policy dari environment. Default radius sangat
// longgar supaya deploy tanpa konfigurasi tidak pernah menolak check-out.
func GeofencePolicyFromEnv() GeofencePolicy {
	return GeofencePolicy{
		RequireLocation: configs.GetEnvBool("PRESENSI_REQUIRE_LOCATION", true),
		GeofenceEnabled: configs.GetEnvBool("PRESENSI_GEOFENCE_ENABLED", true),
		RadiusMeter:     configs.GetEnvFloat("PRESENSI_GEOFENCE_RADIUS_M", 20000000),
	}
}

// validCoordinate: angka finite dan dalam rentang lat [-90,90] / lng [-180,180].
func validCoordinate(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
