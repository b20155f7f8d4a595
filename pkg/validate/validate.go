// Package validate runs go-playground/validator struct-tag rules and turns
// failures into a field → message map keyed by JSON field path.
//
// Example:
//
//	type AddToCartInput struct {
//	    ProductID uint `json:"productId" validate:"required"`
//	    Quantity  *int `json:"quantity"  validate:"omitempty,min=1"`
//	}
//
//	errs := validate.Struct(in) // map["quantity"]"quantity must be at least 1"
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate

	slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugRe.MatchString(fl.Field().String())
		})
	})
	return v
}

// ─── Public API ───────────────────────────────────────────────────────────────

// Struct validates s. Returns a map of field path → error message; an empty
// map means no errors.
func Struct(s any) map[string]string {
	errs := make(map[string]string)

	err := instance().Struct(s)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: s is not a struct. Nothing to report.
		return errs
	}

	for _, fe := range verrs {
		field := fieldPath(fe)
		if _, seen := errs[field]; !seen {
			errs[field] = message(field, fe)
		}
	}
	return errs
}

// HasErrors reports whether errs is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// Summary joins errs into one deterministic line, fields sorted by name.
func Summary(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, errs[k])
	}
	return strings.Join(msgs, "; ")
}

// ─── Internals ────────────────────────────────────────────────────────────────

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("%s must be at most %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "slug":
		return field + " must contain only lowercase letters, digits and hyphens"
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}

// fieldPath drops the top-level struct name from the namespace:
// "PlaceOrderInput.shippingAddress.city" → "shippingAddress.city".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	default:
		return name
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
