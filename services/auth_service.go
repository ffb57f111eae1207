package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pms/config"
	apperrors "pms/errors"
	"pms/models"
)

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GetUserByEmail loads a user by email.
func GetUserByEmail(email string) (models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, apperrors.NewAppError(apperrors.ErrCodeUserNotFound, "User not found", nil)
		}
		return user, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load user", err)
	}
	return user, nil
}

// CreateUser registers a new user with a hashed password.
func CreateUser(input models.User) (models.User, error) {
	var existing models.User
	err := config.DB.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return existing, apperrors.NewAppError(apperrors.ErrCodeUserExists, "Email is already registered", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return input, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to check existing user", err)
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return input, err
	}
	input.Password = hashed

	if err := config.DB.Create(&input).Error; err != nil {
		return input, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to create user", err)
	}
	return input, nil
}

// CreateGoogleUser registers a user coming from a verified Google sign-in.
func CreateGoogleUser(name, email, avatar string) (models.User, error) {
	user := models.User{
		Name:       name,
		Email:      email,
		Avatar:     avatar,
		IsVerified: true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return user, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to create user", err)
	}
	return user, nil
}
