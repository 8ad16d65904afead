// Package validation checks request payloads and reports failures as field errors.
package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates such as dateOfBirth.
const DateLayout = "02-01-2006"

var phonePattern = regexp.MustCompile(`^[+]?\d{10,15}$`)

// Validator wraps validator/v10 and satisfies echo.Validator.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New configures a validator that names fields by their json tag and knows the custom tags
// phone, past_date and money. Decimal fields are validated as float64 so gt/min work on prices.
func New() *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	v.validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()

			return f
		}

		return nil
	}, decimal.Decimal{})

	// RegisterValidation only fails on an empty tag or nil func.
	_ = v.validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, ok := decimalField(fl)
		if !ok {
			return false
		}

		return d.Equal(d.Round(entity.PriceScale)) && d.Abs().LessThan(entity.MaxPrice)
	})
	_ = v.validate.RegisterValidation("past_date", func(fl validator.FieldLevel) bool {
		date, err := time.Parse(DateLayout, fl.Field().String())
		if err != nil {
			return false
		}

		return date.Before(v.now())
	})

	return v
}

// Validate runs the struct tags of i and returns a *domainerrors.ValidationError
// listing every failing field, or nil.
func (v *Validator) Validate(i any) error {
	fields := v.Check(i)
	if len(fields) == 0 {
		return nil
	}

	return domainerrors.NewValidationError(fields...)
}

// Check returns the failing fields of i in declaration order.
func (v *Validator) Check(i any) []domainerrors.FieldError {
	return ToFieldErrors(v.validate.Struct(i))
}

// ToFieldErrors converts validator errors into field errors.
func ToFieldErrors(err error) []domainerrors.FieldError {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domainerrors.FieldError{{Field: "payload", Message: "invalid payload"}}
	}

	out := make([]domainerrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domainerrors.FieldError{
			Field:   fe.Field(),
			Message: formatFieldError(fe),
		})
	}

	return out
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email"
	case "phone":
		return "must be a valid phone number of 10 to 15 digits"
	case "money":
		return "must have at most " + strconv.Itoa(entity.PriceScale) + " decimal places and be less than " + entity.MaxPrice.String()
	case "past_date":
		return "must be a past date in dd-MM-yyyy format"
	case "min":
		if isCollectionKind(fe.Kind()) {
			return "must contain at least " + param + " item(s)"
		}
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}

		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}

		return "must be at most " + param + " characters long"
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	default:
		if param != "" {
			return "failed on '" + fe.Tag() + "' with parameter '" + param + "'"
		}

		return "failed on '" + fe.Tag() + "'"
	}
}

// decimalField reads the raw decimal behind fl, which the custom type func has
// already turned into a float64.
func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	parent := reflect.Indirect(fl.Parent())
	if parent.Kind() != reflect.Struct {
		return decimal.Decimal{}, false
	}

	switch value := parent.FieldByName(fl.StructFieldName()).Interface().(type) {
	case decimal.Decimal:
		return value, true
	case *decimal.Decimal:
		if value != nil {
			return *value, true
		}
	}

	return decimal.Decimal{}, false
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func isCollectionKind(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array || k == reflect.Map
}

// ParseDate parses a dd-MM-yyyy date. An empty string yields nil.
func ParseDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, errors.Wrapf(err, "parse date %q", value)
	}

	return &date, nil
}
