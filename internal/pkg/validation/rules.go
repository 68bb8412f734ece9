package validation

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation limits
const (
	RatingMin         = 1.0
	RatingMax         = 5.0
	UsernameMaxLength = 32
	CommentMaxLength  = 2000
	ReviewMaxLength   = 10000

	// bcrypt refuses longer input. Counted in bytes, not runes.
	PasswordMaxBytes = 72
)

// Tags registered on top of the validator/v10 built-ins
const (
	TagAvatarStyle = "avatarstyle"
	TagAvatarColor = "avatarcolor"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// fieldName reports fields by their json (or form) name so messages match the request
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
	return fld.Name
}

// Register adds the custom tags to v
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)
	if err := v.RegisterValidation(TagAvatarStyle, func(fl validator.FieldLevel) bool {
		return models.AvatarStyle(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation(TagAvatarColor, func(fl validator.FieldLevel) bool {
		return models.AvatarColor(fl.Field().String()).Valid()
	})
}

// RegisterGinValidators installs the custom tags into gin's binding engine. Safe to call repeatedly.
func RegisterGinValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not validator/v10")
			return
		}
		registerErr = Register(v)
	})
	return registerErr
}

// ParseRating parses a numeric rating and checks it lies within [RatingMin, RatingMax]
func ParseRating(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("rating is required")
	}
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
		return 0, errors.New("rating must be a number")
	}
	if rating < RatingMin || rating > RatingMax {
		return 0, errors.New("rating must be between 1 and 5")
	}
	return rating, nil
}

// FormatFieldError creates a human-readable validation error message
func FormatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "url":
		return e.Field() + " must be a valid URL"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case TagAvatarStyle:
		return e.Field() + " must be one of: gradient emoji initials pattern abstract"
	case TagAvatarColor:
		return e.Field() + " must be a palette color"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}

// FirstFieldError returns the field and message of the first validation failure in err.
// ok is false when err does not come from the validator.
func FirstFieldError(err error) (field, message string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "", false
	}
	first := verrs[0]
	return lowerFirst(first.Field()), FormatFieldError(first), true
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
