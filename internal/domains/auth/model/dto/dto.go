package dto

import (
	"hotelbook/infras/jwt"
	userModel "hotelbook/internal/domains/user/model"
	userRepo "hotelbook/internal/domains/user/repository"
	gModel "hotelbook/shared/model"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"         example:"Jane Doe"`
	Email    string `json:"email"    validate:"required,email,max=255"         example:"jane@example.com"`
	Password string `json:"password" validate:"required,min=8,max=72"          example:"s3cretpass"`
	Role     string `json:"role"     validate:"required,oneof=customer owner"  example:"customer"`
	Phone    string `json:"phone"    validate:"required,min=10,max=13,numeric" example:"081234567890"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword string, now time.Time) userModel.User {
	id := uuid.NewString()

	return userModel.User{
		ID:       id,
		Name:     strings.TrimSpace(r.Name),
		Email:    userRepo.NormalizeEmail(r.Email),
		Password: hashedPassword,
		Role:     r.Role,
		Phone:    r.Phone,
		Active:   true,
		Metadata: gModel.NewMetadata(id, now),
	}
}

type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (r *RegisterResponse) FromModel(user userModel.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.Role = user.Role
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email" example:"jane@example.com"`
	Password string `json:"password" validate:"required"       example:"s3cretpass"`
}

// UpdateLastLoginRequest stamps a successful login. Password is only set when the
// stored hash was upgraded to the current cost.
type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
	Password  string    `db:"password"   json:"-"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse = LoginResponse

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
