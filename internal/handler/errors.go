package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"socialmedia/backend/internal/apperror"
	"socialmedia/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var registerOnce sync.Once

// RegisterValidators reports request fields by their JSON names and adds
// the notblank rule. It is safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
}

// respondError writes the response for a service error. Every error kind
// becomes a flat 400; infrastructure failures are logged and their details
// hidden.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err, "unexpected error")
	}

	switch appErr.Kind {
	case apperror.KindInternal:
		logger.Log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Internal server error"})
	case apperror.KindStorage:
		logger.Log.Error("storage failure", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
	}
}

// respondBindingError writes a 400 listing the invalid fields of a request.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Violations: []Violation{{FieldName: "body", Message: "malformed request body"}},
		})
		return
	}

	violations := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, Violation{FieldName: fe.Field(), Message: violationMessage(fe)})
	}
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{Violations: violations})
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("length must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("length must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
