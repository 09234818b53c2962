package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	userModel "presensiku_backend/internals/features/users/user/model"
)

func TestCreateAndParseAccessToken(t *testing.T) {
	user := &userModel.UserModel{
		ID:   uuid.New(),
		Nama: "Budi Santoso",
		Role: "mahasiswa",
	}
	now := time.Now()

	token, err := CreateAccessToken(user, "test-secret", now)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseAccessToken(token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims["id"])
	assert.Equal(t, "Budi Santoso", claims["nama"])
	assert.Equal(t, "mahasiswa", claims["role"])
	assert.EqualValues(t, now.Unix(), claims["iat"])
	assert.EqualValues(t, now.Add(time.Hour).Unix(), claims["exp"])
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	user := &userModel.UserModel{ID: uuid.New(), Nama: "Budi", Role: "admin"}

	token, err := CreateAccessToken(user, "secret-a", time.Now())
	assert.NoError(t, err)

	_, err = ParseAccessToken(token, "secret-b")
	assert.Error(t, err)
}
