package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError names one request field that failed a rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

type validationErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names, not Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// bcrypt rejects anything past 72 bytes; the built-in max counts runes.
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return v
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// validateRequest runs the `validate` rules on req and returns one FieldError
// per violation, or nil when req is acceptable.
func validateRequest(req any) []FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Rule: "invalid"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}

// bind decodes the JSON body into req and validates it. On failure it writes
// a 400 and returns false.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, validationErrorResponse{Error: "Invalid JSON body"})
		return false
	}
	if fields := validateRequest(req); fields != nil {
		c.JSON(http.StatusBadRequest, validationErrorResponse{Error: errValidation, Fields: fields})
		return false
	}
	return true
}
