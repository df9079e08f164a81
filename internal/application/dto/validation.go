package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/merchbydz/backoffice/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator instancia compartida: nombres de campo tomados del tag json
// y decimal.Decimal comparado como float64 en reglas numéricas (gte, lte...).
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "query", "csv"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		validate = v
	})
	return validate
}

// Validate valida s y traduce los errores a domain.ErrInvalidInput con un mensaje legible.
func Validate(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " es requerido"
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de [%s]", fe.Field(), fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s debe ser >= %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s debe ser <= %s", fe.Field(), fe.Param())
	case "datetime":
		return fe.Field() + " debe tener formato AAAA-MM-DD"
	}
	return fmt.Sprintf("%s no cumple %s", fe.Field(), fe.Tag())
}
