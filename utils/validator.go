package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// ValidationDetail is one entry of a 422 response body. Loc is the
// path to the violated field, e.g. ["body", "nickname"].
type ValidationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidateStruct validates a request payload against its tags.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationErrorResponse sends a 422 with the field-level error list.
func ValidationErrorResponse(c *gin.Context, err error) {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		details := make([]ValidationDetail, 0, len(validationErrors))
		for _, e := range validationErrors {
			details = append(details, ValidationDetail{
				Loc:  []string{"body", jsonFieldName(e.Field())},
				Msg:  formatValidationError(e),
				Type: e.Tag(),
			})
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": details})
		return
	}
	BindErrorResponse(c, err)
}

// BindErrorResponse sends a 422 for payloads that could not be decoded
// at all (malformed JSON, wrong value types).
func BindErrorResponse(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []ValidationDetail{
		{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"},
	}})
}

// NotFoundResponse sends the single-message 404 shape.
func NotFoundResponse(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"detail": msg})
}

// jsonFieldName converts a Go struct field name to its snake_case
// JSON counterpart (VisitorID -> visitor_id).
func jsonFieldName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (field[i-1] < 'A' || field[i-1] > 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func formatValidationError(e validator.FieldError) string {
	field := jsonFieldName(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return field + " must be one of " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "min":
		return field + " must be at least " + e.Param() + " characters"
	case "max":
		return field + " must be at most " + e.Param() + " characters"
	case "gte":
		return field + " must be greater than or equal to " + e.Param()
	case "lte":
		return field + " must be less than or equal to " + e.Param()
	default:
		return field + " is invalid"
	}
}
