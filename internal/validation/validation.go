// Package validation provides struct validation shared by the API handlers
// and the CLI forms
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/hasnain-nisan/admindash/internal/db/models"
	"github.com/hasnain-nisan/admindash/internal/permissions"
)

// Errors maps a JSON field name to what is wrong with it
type Errors map[string]string

// Error lists the field errors sorted by field name
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" "+e[f])
	}
	return strings.Join(parts, ", ")
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)
		_ = validate.RegisterValidation("scope", func(fl validator.FieldLevel) bool {
			return permissions.IsKnownScope(fl.Field().String())
		})
		_ = validate.RegisterValidation("deletedstatus", func(fl validator.FieldLevel) bool {
			_, err := models.ParseDeletedStatus(fl.Field().String())
			return err == nil
		})
		_ = validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			_, err := models.ParseUserRole(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// fieldName reports json (or query) names so messages match the wire format
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Struct validates v using its `validate` tags. It returns nil or Errors.
func Struct(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; !seen {
			out[field] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "json":
		return "must be a JSON document"
	case "scope":
		return fmt.Sprintf("has unknown access scope %q", fe.Value())
	case "deletedstatus":
		return `must be "", "true" or "false"`
	case "role":
		return "must be one of: viewer, editor, admin"
	default:
		return "is invalid"
	}
}
