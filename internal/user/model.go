// Package user owns storefront accounts. Checkout only needs to know that a
// user exists; the user service exposes that over gRPC.
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/evstore/storefront/internal/apperr"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser is the input of a registration.
type NewUser struct {
	Username string `validate:"required,min=3,max=50"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (n NewUser) Validate() error {
	err := validate.Struct(n)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Invalid("user", err.Error())
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return apperr.Invalid(field, "is required")
	case "email":
		return apperr.Invalid(field, "must be a valid email address")
	case "min":
		return apperr.Invalid(field, "must be at least "+fe.Param()+" characters")
	case "max":
		return apperr.Invalid(field, "must be at most "+fe.Param()+" characters")
	}
	return apperr.Invalid(field, "failed "+fe.Tag()+" check")
}

// HashPassword hashes pw with bcrypt at the default cost.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
