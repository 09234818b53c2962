package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"presensiku_backend/internals/configs"
	"presensiku_backend/internals/features/users/auth/dto"
	authHelper "presensiku_backend/internals/features/users/auth/helper"
	authModel "presensiku_backend/internals/features/users/auth/model"
	userModel "presensiku_backend/internals/features/users/user/model"
	helper "presensiku_backend/internals/helpers"
)

var validate = validator.New()

// ========================== REGISTER ==========================
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	req.Nama = strings.TrimSpace(req.Nama)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Nama == "" || req.Email == "" || strings.TrimSpace(req.Password) == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Nama, email, dan password harus diisi")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hashed, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	user := userModel.UserModel{
		Nama:     req.Nama,
		Email:    req.Email,
		Password: hashed,
		Role:     req.Role,
	}
	user.SetDefaultValues()

	if err := db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.Error(c, fiber.StatusBadRequest, "Email sudah terdaftar.")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server: "+err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registrasi berhasil", dto.RegisterResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  user.Role,
	})
}

// ========================== LOGIN ==========================
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user userModel.UserModel
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Email tidak ditemukan.")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server: "+err.Error())
	}

	if err := authHelper.CheckPasswordHash(user.Password, req.Password); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Password salah.")
	}

	token, err := CreateAccessToken(&user, configs.JWTSecret, time.Now().UTC())
	if err != nil {
		log.Println("[ERROR] gagal sign token:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.Success(c, "Login berhasil", dto.LoginResponse{Token: token})
}

// ========================== LOGOUT ==========================
// Token yang masih hidup dimasukkan ke blacklist sampai lewat exp-nya.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	auth := strings.TrimSpace(c.Get("Authorization"))
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized - No token provided")
	}
	tokenString := strings.Trim(fields[1], "\"'")

	claims, err := ParseAccessToken(tokenString, configs.JWTSecret)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized - Invalid token")
	}

	expiredAt := time.Now().Add(accessTokenTTL)
	if exp, ok := claims["exp"].(float64); ok {
		expiredAt = time.Unix(int64(exp), 0)
	}

	entry := authModel.TokenBlacklist{
		Token:     tokenString,
		ExpiredAt: expiredAt,
	}
	if err := db.Create(&entry).Error; err != nil && !isUniqueViolation(err) {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal logout: "+err.Error())
	}

	return helper.Success(c, "Logout berhasil", nil)
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
