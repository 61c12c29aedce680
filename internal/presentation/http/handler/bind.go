package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
	"github.com/sangkips/ledger-api/pkg/apperror"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// fieldName reports fields under their json or form name
func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return ""
}

// bindJSON binds the request body and writes the error response when it fails
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		bindError(c, err, "Invalid request body")
		return false
	}
	return true
}

// bindQuery binds query parameters and writes the error response when it fails
func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		bindError(c, err, "Invalid query parameters")
		return false
	}
	return true
}

func bindError(c *gin.Context, err error, message string) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		response.ValidationError(c, FieldErrors(ve))
		return
	}
	response.BadRequest(c, message)
}

// FieldErrors converts validator errors into the API's field error list
func FieldErrors(errs validator.ValidationErrors) []apperror.FieldError {
	out := make([]apperror.FieldError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, apperror.FieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// fieldPath drops the struct name so nested items read as items[0].quantity
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "uppercase":
		return "Must be upper case"
	default:
		return "Invalid value (" + fe.Tag() + ")"
	}
}
