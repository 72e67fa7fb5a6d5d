package http

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/inventory-service/internal/apperr"
)

var (
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	validateOnce sync.Once
)

func registerValidators() {
	validateOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("email_addr", func(fl validator.FieldLevel) bool {
			return emailRe.MatchString(fl.Field().String())
		})
		// empty passes; pair with required when the id is mandatory
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || primitive.IsValidObjectID(s)
		})
	})
}

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return apperr.Validation("%s", fieldMessage(ves[0]))
	}
	return apperr.Wrap(apperr.KindValidation, err, "Invalid request body: "+err.Error())
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please enter %s", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "email_addr":
		return "Please enter a valid email"
	case "objectid":
		return fmt.Sprintf("%s is not a valid id", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
