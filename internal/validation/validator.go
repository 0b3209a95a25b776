package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	instance *Validator
	once     sync.Once
)

// Get returns the shared validator with the custom rules registered
func Get() *Validator {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("slot", validateSlot)
		_ = v.RegisterValidation("tier", validateTier)
		instance = &Validator{validate: v}
	})
	return instance
}

// Struct validates a struct using tags. Failures wrap domain.ErrValidation.
func (v *Validator) Struct(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, Describe(err))
	}
	return nil
}

// Describe formats validation errors into a single user-friendly sentence.
// Internal struct names are not leaked.
func Describe(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "invalid request format"
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "slot":
			msgs = append(msgs, field+" must be one of head, chest, shoes, main-hand, off-hand")
		case "tier":
			msgs = append(msgs, field+" must look like T7, 7 or 4.3")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, e.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		case "unique":
			msgs = append(msgs, field+" may only contain one entry per "+strings.ToLower(e.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

func validateSlot(fl validator.FieldLevel) bool {
	return domain.Slot(fl.Field().String()).Valid()
}

// validateTier accepts canonical or free-form tier input that canonicalizes to a numbered tier
func validateTier(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	_, ok := domain.TierNumber(domain.ParseTierEquivalent(raw))
	return ok
}
