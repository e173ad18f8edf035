package httputil

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/GraftonJ/repsy-be/pkg/errors"
)

func init() {
	// Report failing fields by their json names, not Go struct names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// BindStrict decodes a creation payload. The schema is strict: unknown
// fields are a validation error, and required fields are enforced via
// binding tags.
func BindStrict(c *gin.Context, obj interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return errors.Validation(decodeMessage(err))
	}
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return errors.Validation(validationMessage(err))
	}
	return nil
}

// Bind decodes a patch payload. Unknown fields are silently dropped:
// the typed patch struct is the allow-list, anything outside it never
// reaches the store.
func Bind(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			return errors.Validation(validationMessage(err))
		}
		return errors.Validation(decodeMessage(err))
	}
	return nil
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		return fmt.Sprintf("%q must be a %s", typeErr.Field, typeErr.Type)
	}
	return err.Error()
}

// validationMessage names the first failing field with a readable reason.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%q is required", fe.Field())
		case "email":
			return fmt.Sprintf("%q must be a valid email", fe.Field())
		default:
			return fmt.Sprintf("%q failed validation on %q", fe.Field(), fe.Tag())
		}
	}
	return err.Error()
}
