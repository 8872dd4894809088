package helper

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate runs validator tags and returns a 400 *fiber.Error listing every failing field.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, validationMessage(fe))
	}
	return fiber.NewError(fiber.StatusBadRequest, strings.Join(msgs, "; "))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters", fe.Field(), fe.Param())
	case "uuid", "uuid4":
		return fe.Field() + " must be a valid UUID"
	default:
		return fe.Field() + " is invalid"
	}
}

// MapDBError converts gorm / driver errors into HTTP errors.
func MapDBError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if notFoundMsg == "" {
			notFoundMsg = "Record not found"
		}
		return fiber.NewError(fiber.StatusNotFound, notFoundMsg)
	}

	code := ""
	var pgErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgErr):
		code = pgErr.Code
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	case IsUniqueViolation(err):
		code = "23505"
	}

	switch code {
	case "23505":
		return fiber.NewError(fiber.StatusConflict, "Duplicate record (unique violation)")
	case "23503":
		return fiber.NewError(fiber.StatusBadRequest, "Referenced record not found (foreign key violation)")
	case "23514":
		return fiber.NewError(fiber.StatusBadRequest, "Value violates a check constraint")
	}

	log.Printf("[ERROR] database: %v", err)
	return fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
}

// IsUniqueViolation is the driver-agnostic fallback (sqlite, wrapped errors).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
