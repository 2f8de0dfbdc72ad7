package validator

import (
	stderrors "errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/trip-planner/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterStructValidation(domain.ServiceScheduleStructLevel, domain.ServiceSchedule{})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// Messages - ошибки валидации в виде "поле: правило"
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return messages
}
