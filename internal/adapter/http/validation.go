package http

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var (
	reBarcode       = regexp.MustCompile(`^ITEM-[a-f0-9]{8}$`)
	reRequestNumber = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{0,31}$`)
)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// barcode as the registry generates them
	_ = v.RegisterValidation("barcode", func(fl validator.FieldLevel) bool {
		return reBarcode.MatchString(fl.Field().String())
	})
	// operator-supplied request number, e.g. "REQ-1"
	_ = v.RegisterValidation("reqnum", func(fl validator.FieldLevel) bool {
		return reRequestNumber.MatchString(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "barcode":
			out = append(out, FieldError{Field: field, Message: "must look like ITEM-xxxxxxxx"})
		case "reqnum":
			out = append(out, FieldError{Field: field, Message: "must be an uppercase request number"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of: " + e.Param()})
		case "datetime":
			out = append(out, FieldError{Field: field, Message: "must match format " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
