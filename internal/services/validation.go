package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"storefront/internal/apperror"
)

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("integral", isIntegral); err != nil {
		panic(err)
	}
	return v
}

// maxIntegral is the largest float64 below which every integer is exact.
const maxIntegral = 1 << 53

// isIntegral accepts numbers with no fractional part, however they were spelled.
func isIntegral(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		n := f.Float()
		return n == math.Trunc(n) && math.Abs(n) <= maxIntegral
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

// validationError turns validator output into a single validation error.
// Missing required fields are reported together, in declaration order.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperror.Validation("%s", err.Error()).WithError(err)
	}

	var missing []string
	for _, e := range validationErrors {
		if e.Tag() == "required" {
			missing = append(missing, e.Field())
		}
	}
	if len(missing) > 0 {
		return apperror.Validation("Missing fields: %s", strings.Join(missing, ", "))
	}
	return apperror.Validation("%s", FieldRuleMessage(validationErrors[0].Field()))
}

// FieldRuleMessage describes what a valid value of a product field looks like.
func FieldRuleMessage(field string) string {
	switch field {
	case "price":
		return "price must be a non-negative number"
	case "stock":
		return "stock must be a non-negative integer"
	case "status":
		return "status must be boolean"
	case "thumbnails":
		return "thumbnails must be an array of strings"
	default:
		return fmt.Sprintf("%s must be a string", field)
	}
}

// DecodeJSON parses a request body into dst. An empty body decodes as an
// empty object. Type mismatches are reported as validation errors on the
// offending field.
func DecodeJSON(body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	err := json.Unmarshal(body, dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[:i]
		}
		return apperror.Validation("%s", FieldRuleMessage(field)).WithError(err)
	}
	return apperror.Validation("Invalid request body").WithError(err)
}
