package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("rahasia-banget")
	assert.NoError(t, err)
	assert.NotEqual(t, "rahasia-banget", hashed)

	assert.NoError(t, CheckPasswordHash(hashed, "rahasia-banget"))
	assert.Error(t, CheckPasswordHash(hashed, "password-salah"))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("rahasia-banget")
	assert.NoError(t, err)
	h2, err := HashPassword("rahasia-banget")
	assert.NoError(t, err)
	// bcrypt pakai salt acak, hash tidak boleh sama
	assert.NotEqual(t, h1, h2)
}
