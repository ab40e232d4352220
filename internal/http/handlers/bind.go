package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON binds the request body into out and answers the 400 itself when
// the body does not parse or fails a binding tag.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		RespondBadRequest(ctx, bindErrorMessage(err))

		return false
	}

	return true
}

func bindErrorMessage(err error) string {
	var validatorErrors validator.ValidationErrors

	if errors.As(err, &validatorErrors) {
		parts := make([]string, 0, len(validatorErrors))

		for _, fieldError := range validatorErrors {
			parts = append(parts, fieldMessage(fieldError))
		}

		return strings.Join(parts, "; ")
	}

	var syntaxError *json.SyntaxError

	if errors.As(err, &syntaxError) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return "Invalid JSON body"
	}

	var typeError *json.UnmarshalTypeError

	if errors.As(err, &typeError) {
		return fmt.Sprintf("Field %s must be of type %s", typeError.Field, typeError.Type.String())
	}

	return "Invalid request body"
}

func fieldMessage(fieldError validator.FieldError) string {
	field := strings.ToLower(fieldError.Field())

	switch fieldError.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of " + strings.ReplaceAll(fieldError.Param(), " ", ", ")
	default:
		return field + " failed " + fieldError.Tag() + " validation"
	}
}
