// internal/app/system/inputval/inputval.go
package inputval

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldError is one failed rule, addressed by the field's JSON name.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the field errors of one Validate call.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return r != nil && len(r.Errors) > 0 }

// First returns the first error message, or "".
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// AppErr converts the result into a validation *apperr.Error, or nil.
func (r *Result) AppErr() *apperr.Error {
	if !r.HasErrors() {
		return nil
	}
	fields := make([]apperr.FieldError, len(r.Errors))
	for i, e := range r.Errors {
		fields[i] = apperr.FieldError{Field: e.Field, Message: e.Message}
	}
	return apperr.Validation(fields...)
}

var (
	once     sync.Once
	validate *validator.Validate
)

var areaKeyRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			return IsValidHTTPURL(fl.Field().String())
		})
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return IsValidObjectID(fl.Field().String())
		})
		_ = v.RegisterValidation("contactstatus", func(fl validator.FieldLevel) bool {
			return models.IsValidContactStatus(fl.Field().String())
		})
		_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
			return models.IsValidPriority(fl.Field().String())
		})
		_ = v.RegisterValidation("areakey", func(fl validator.FieldLevel) bool {
			return IsValidAreaKey(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// Validate runs the `validate` struct tags of s. Messages use the `label`
// tag of each top-level field, falling back to the Go field name.
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Field: "body", Message: "Invalid input."})
		return res
	}
	labels := labelsOf(s)
	for _, fe := range verrs {
		goName := fe.StructField()
		if i := strings.IndexByte(goName, '['); i >= 0 {
			goName = goName[:i]
		}
		label := labels[goName]
		if label == "" {
			label = goName
		}
		res.Errors = append(res.Errors, FieldError{Field: fe.Field(), Message: message(fe, label)})
	}
	return res
}

func labelsOf(s any) map[string]string {
	t := reflect.TypeOf(s)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]string{}
	if t == nil || t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if l := f.Tag.Get("label"); l != "" {
			out[f.Name] = l
		}
	}
	return out
}

func message(fe validator.FieldError, label string) string {
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "max":
		if isList {
			return fmt.Sprintf("%s must have at most %s items.", label, fe.Param())
		}
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "min":
		if isList {
			return fmt.Sprintf("%s must have at least %s items.", label, fe.Param())
		}
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "email":
		return "A valid email address is required."
	case "httpurl":
		return label + " must be a valid http(s) URL."
	case "objectid":
		return label + " must be a valid ID."
	case "contactstatus":
		return label + " must be one of: " + strings.Join(models.ContactStatuses(), ", ") + "."
	case "priority":
		return label + " must be one of: " + strings.Join(models.Priorities(), ", ") + "."
	case "areakey":
		return label + " may contain only lowercase letters, digits and single hyphens."
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return label + " is invalid."
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// IsValidEmail reports whether s is a bare RFC 5322 addr-spec (no display
// name) without leading, trailing or consecutive dots.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\r\n<>") {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	for _, part := range []string{local, domain} {
		if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") || strings.Contains(part, "..") {
			return false
		}
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Name == "" && addr.Address == s
}

// IsValidHTTPURL reports whether s is an absolute http or https URL with a host.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidObjectID reports whether s is a 24-character hex ObjectID.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}

// IsValidAreaKey reports whether s is a lowercase slug such as "dha-phase-6".
func IsValidAreaKey(s string) bool {
	return areaKeyRe.MatchString(s)
}
