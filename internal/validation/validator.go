// Package validation valida os formulários do painel antes de qualquer chamada ao backend.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperror "marmitaria/internal/errors"
)

var validate = validator.New()

func init() {
	// decimal.Decimal é validado como número (gt=0, gte=0, required).
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Os campos são reportados pelo nome JSON, o mesmo usado nos formulários.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Struct valida as tags `validate` de v. Em caso de falha devolve um
// apperror.ValidationError com msg como título e uma mensagem por campo.
func Struct(v interface{}, msg string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewInternalError("Falha ao validar formulário.", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = message(fe)
	}
	return apperror.NewFieldValidationError(msg, fields)
}

// fieldPath remove o nome da struct do namespace: "VendaInput.itens[0].quantidade" -> "itens[0].quantidade".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "gt":
		if fe.Param() == "0" {
			return "deve ser maior que zero"
		}
		return fmt.Sprintf("deve ser maior que %s", fe.Param())
	case "gte":
		if fe.Param() == "0" {
			return "não pode ser negativo"
		}
		return fmt.Sprintf("deve ser maior ou igual a %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("informe pelo menos %s item(ns)", fe.Param())
		}
		return fmt.Sprintf("mínimo de %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("deve ser um de: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("valor inválido (%s)", fe.Tag())
	}
}
