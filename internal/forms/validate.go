package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"lenzooadmin/internal/models"
)

// Errors maps a form field name to the first problem found with it.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e[k])
	}
	return strings.Join(parts, "; ")
}

// Add keeps the first message per field.
func (e Errors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

func (e Errors) Any() bool {
	return len(e) > 0
}

var optionSets = map[string][]string{
	"productType":      models.ProductTypes,
	"frameType":        models.FrameTypes,
	"frameShape":       models.FrameShapes,
	"frameMaterial":    models.FrameMaterials,
	"gender":           models.Genders,
	"suitableFor":      models.SuitableFor,
	"frameSize":        models.FrameSizes,
	"orderStatus":      models.OrderStatuses,
	"membershipTitle":  models.MembershipTitles,
	"membershipPlan":   models.MembershipPlans,
	"membershipStatus": models.MembershipStatuses,
	"planDuration":     models.PlanDurations,
	"policyType":       {models.PolicyAbout, models.PolicyTerms},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// option=<set> accepts a string or every element of a []string that
	// belongs to the named option set. Empty strings are left to required.
	_ = v.RegisterValidation("option", func(fl validator.FieldLevel) bool {
		set, ok := optionSets[fl.Param()]
		if !ok {
			return false
		}
		field := fl.Field()
		switch field.Kind() {
		case reflect.String:
			return field.String() == "" || contains(set, field.String())
		case reflect.Slice:
			for i := 0; i < field.Len(); i++ {
				if !contains(set, field.Index(i).String()) {
					return false
				}
			}
			return true
		}
		return false
	})
	return v
}

// check runs struct validation and converts failures into field messages.
func check(v any) Errors {
	errs := Errors{}
	err := validate.Struct(v)
	if err == nil {
		return errs
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		errs.Add("form", err.Error())
		return errs
	}
	for _, fe := range fieldErrors {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	isList := fe.Kind() == reflect.Slice
	switch fe.Tag() {
	case "required":
		if isList {
			return "select at least one"
		}
		return "is required"
	case "min":
		if isList {
			if fe.Param() == "1" {
				return "select at least one"
			}
			return fmt.Sprintf("select at least %s", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	case "ltefield":
		return fmt.Sprintf("must not exceed %s", lowerCamel(fe.Param()))
	case "eqfield":
		return fmt.Sprintf("must match %s", lowerCamel(fe.Param()))
	case "nefield":
		return fmt.Sprintf("must differ from %s", lowerCamel(fe.Param()))
	case "email":
		return "must be a valid email address"
	case "option":
		return "is not an allowed value"
	default:
		return "is invalid"
	}
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func text(values map[string][]string, name string) string {
	if v, ok := values[name]; ok && len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// list returns non-empty trimmed values of a repeated field.
func list(values map[string][]string, name string) []string {
	out := make([]string, 0, len(values[name]))
	for _, v := range values[name] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// number parses a float field. A blank value is zero and left to the
// struct rules; garbage is reported against the field.
func number(values map[string][]string, name string, errs Errors) float64 {
	raw := text(values, name)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errs.Add(name, "must be a number")
		return 0
	}
	return f
}

// merge folds decode-time errors into the struct errors, keeping the decode
// message when both fire for a field.
func merge(decode, rules Errors) Errors {
	for k, v := range rules {
		decode.Add(k, v)
	}
	return decode
}
