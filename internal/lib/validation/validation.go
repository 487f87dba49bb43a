// Package validation создает валидатор запросов с доменными правилами.
package validation

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// New возвращает валидатор с зарегистрированным правилом "password":
// минимум 8 символов, хотя бы одна заглавная и строчная буква и цифра.
func New() *validator.Validate {
	v := validator.New()
	// RegisterValidation возвращает ошибку только для пустого тега
	_ = v.RegisterValidation("password", validatePassword)
	return v
}

func validatePassword(fl validator.FieldLevel) bool {
	pass := fl.Field().String()
	if len(pass) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range pass {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
