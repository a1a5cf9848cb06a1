package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate проверяет структуру по тегам validate
func Validate(v interface{}) error {
	return validate.Struct(v)
}

// ValidationMessage человекочитаемое описание ошибки валидации
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("поле %s обязательно", fe.Field()))
		case "email":
			parts = append(parts, fmt.Sprintf("поле %s должно быть email", fe.Field()))
		default:
			parts = append(parts, fmt.Sprintf("поле %s не прошло проверку %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
