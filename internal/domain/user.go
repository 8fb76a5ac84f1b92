package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                     uuid.UUID  `json:"id" db:"id"`
	Email                  string     `json:"email" db:"email"`
	Username               string     `json:"username" db:"username"`
	PasswordHash           string     `json:"-" db:"password_hash"`
	FirstName              string     `json:"first_name" db:"first_name"`
	LastName               string     `json:"last_name" db:"last_name"`
	Phone                  *string    `json:"phone,omitempty" db:"phone"`
	Gender                 *string    `json:"gender,omitempty" db:"gender"`
	GitHubProfile          *string    `json:"github_profile,omitempty" db:"github_profile"`
	ProfileImage           *string    `json:"profile_image,omitempty" db:"profile_image"`
	AccountType            string     `json:"account_type" db:"account_type"`
	GoogleID               *string    `json:"-" db:"google_id"`
	Role                   string     `json:"role" db:"role"`
	IsActive               bool       `json:"is_active" db:"is_active"`
	IsVerified             bool       `json:"is_verified" db:"is_verified"`
	PasswordResetToken     *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpiresAt *time.Time `json:"-" db:"password_reset_expires_at"`
	LastLoginAt            *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt              time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at" db:"updated_at"`
}

// UserSummary is the public projection embedded in blogs, interactions and likes.
type UserSummary struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email,omitempty" db:"email"`
	ProfileImage *string   `json:"profile_image,omitempty" db:"profile_image"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == string(RoleAdmin)
}

// CanModify is the creator-or-admin rule used for updates and deletes.
func (u *User) CanModify(ownerID uuid.UUID) bool {
	if u == nil {
		return false
	}
	return u.ID == ownerID || u.IsAdmin()
}

type Name struct {
	First string `json:"first" validate:"required"`
	Last  string `json:"last"`
}

type SignupInput struct {
	Username   string `json:"username" validate:"required,min=3,max=30"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,len=10,numeric"`
	Name       Name   `json:"name"`
	Password   string `json:"password" validate:"required,min=6,max=20"`
	RePassword string `json:"rePassword" validate:"required,eqfield=Password"`
}

type VerifyOTPInput struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type LoginInput struct {
	// Handle is an email address or a username.
	Handle   string `json:"handle" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginInput struct {
	IDToken string `json:"id_token" validate:"required"`
}

type UpdateProfileInput struct {
	FirstName     *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=50"`
	LastName      *string `json:"last_name,omitempty" validate:"omitempty,max=50"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,len=10,numeric"`
	Gender        *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	GitHubProfile *string `json:"github_profile,omitempty" validate:"omitempty,url"`
	ProfileImage  *string `json:"profile_image,omitempty" validate:"omitempty,url"`
}

type UpdateRoleInput struct {
	Role string `json:"role" validate:"required,oneof=employee admin"`
}

type UpdateStatusInput struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type UserFilter struct {
	Search    string
	Role      string
	IsActive  *bool
	SortBy    string
	SortOrder string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleAdmin    UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleEmployee, RoleAdmin:
		return true
	default:
		return false
	}
}

const (
	AccountTypeEmail  = "email"
	AccountTypeGoogle = "google"
)

// HasRole treats admin as a superset of employee.
func (u *User) HasRole(requiredRole string) bool {
	switch requiredRole {
	case string(RoleAdmin):
		return u.Role == string(RoleAdmin)
	case string(RoleEmployee):
		return u.Role == string(RoleEmployee) || u.Role == string(RoleAdmin)
	default:
		return false
	}
}

type PublicProfile struct {
	User        UserSummary `json:"user"`
	GitHub      *string     `json:"github_profile,omitempty"`
	JoinedAt    time.Time   `json:"joined_at"`
	RecentBlogs []Blog      `json:"recent_blogs"`
}

type ResendOTPInput struct {
	Email string `json:"email" validate:"required,email"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Token      string `json:"token" validate:"required"`
	Password   string `json:"password" validate:"required,min=6,max=20"`
	RePassword string `json:"rePassword" validate:"required,eqfield=Password"`
}
