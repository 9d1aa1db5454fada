package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidationErrorDetail represents the structure of a single validation error.
type ValidationErrorDetail struct {
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Expected string      `json:"expected"`
	Received interface{} `json:"received"`
}

// ValidationErrorData represents the data field in the validation error response.
type ValidationErrorData struct {
	Errors        []ValidationErrorDetail `json:"errors"`
	Documentation string                  `json:"documentation"`
}

const DocumentationLink = "/swagger/index.html"

// BindAndValidate binds the JSON body to obj and validates it. On failure it
// writes a 400 with per-field details and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	c.JSON(http.StatusBadRequest, Response{
		Status:  http.StatusBadRequest,
		Message: "Invalid request parameters",
		Data: ValidationErrorData{
			Errors:        describeBindError(obj, err),
			Documentation: DocumentationLink,
		},
	})
	return false
}

func describeBindError(obj interface{}, err error) []ValidationErrorDetail {
	var errs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &errs):
		details := make([]ValidationErrorDetail, 0, len(errs))
		for _, e := range errs {
			details = append(details, describeFieldError(obj, e))
		}
		return details
	case errors.As(err, &typeErr):
		return []ValidationErrorDetail{{
			Field:    typeErr.Field,
			Message:  fmt.Sprintf("Field '%s' has invalid type", typeErr.Field),
			Expected: typeErr.Type.String(),
			Received: typeErr.Value,
		}}
	default:
		return []ValidationErrorDetail{{
			Field:    "body",
			Message:  "Malformed JSON or invalid request body",
			Expected: "valid JSON",
			Received: "invalid",
		}}
	}
}

func describeFieldError(obj interface{}, e validator.FieldError) ValidationErrorDetail {
	field := getJSONTagName(obj, e.StructField())
	detail := ValidationErrorDetail{
		Field:    field,
		Message:  fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", field, e.Tag()),
		Expected: e.Param(),
		Received: e.Value(),
	}
	if detail.Expected == "" {
		detail.Expected = e.Tag()
	}

	switch e.Tag() {
	case "required":
		detail.Message = fmt.Sprintf("Field '%s' is required", field)
		detail.Expected = "not empty"
	case "min":
		detail.Message = fmt.Sprintf("Field '%s' must be at least %s long", field, e.Param())
		detail.Expected = fmt.Sprintf("min %s", e.Param())
	case "max":
		detail.Message = fmt.Sprintf("Field '%s' must be at most %s long", field, e.Param())
		detail.Expected = fmt.Sprintf("max %s", e.Param())
	case "oneof":
		detail.Message = fmt.Sprintf("Field '%s' must be one of: %s", field, e.Param())
	case "hexcolor":
		detail.Message = fmt.Sprintf("Field '%s' must be a hex color such as #3B82F6", field)
	}
	return detail
}

// getJSONTagName maps a top-level struct field to its JSON name. Nested
// fields keep their Go name.
func getJSONTagName(obj interface{}, fieldName string) string {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fieldName
	}
	if f, ok := t.FieldByName(fieldName); ok {
		if tag := strings.Split(f.Tag.Get("json"), ",")[0]; tag != "" && tag != "-" {
			return tag
		}
	}
	return fieldName
}
