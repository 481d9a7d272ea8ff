// Package payload parses and validates inbound webhook message bodies.
package payload

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"sms-ingest/internal/common/errors"
)

// MaxTextLength is the longest accepted message text.
const MaxTextLength = 4096

var (
	msisdnPattern    = regexp.MustCompile(`^\+\d+$`)
	timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)
)

// Message is a validated inbound message. Sender carries the wire field
// "from", which collides with reserved words in several languages.
type Message struct {
	MessageID string `json:"message_id" validate:"required,min=1"`
	Sender    string `json:"from" validate:"required,msisdn"`
	To        string `json:"to" validate:"required,msisdn"`
	Timestamp string `json:"ts" validate:"required,utcsecond"`
	Text      string `json:"text" validate:"max=4096"`
}

// Validator decodes raw webhook bodies into validated Messages.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a payload validator with the message field rules
// registered.
func NewValidator() *Validator {
	v := validator.New()

	// Registration only fails for empty tag names, which are fixed here.
	_ = v.RegisterValidation("msisdn", func(fl validator.FieldLevel) bool {
		return msisdnPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("utcsecond", func(fl validator.FieldLevel) bool {
		return timestampPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Parse decodes body as JSON and validates it against the message shape.
// The body must already be signature-verified; Parse has no side effects
// and returns a validation error with a human-readable detail on any
// malformed or out-of-range input.
func (v *Validator) Parse(body []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, errors.ValidationError(fmt.Sprintf("malformed JSON body: %v", err))
	}

	if err := v.validate.Struct(&msg); err != nil {
		return nil, errors.ValidationError(describeValidationError(err))
	}

	return &msg, nil
}

// describeValidationError turns validator failures into the wire-field
// oriented detail messages callers see in 422 responses.
func describeValidationError(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := wireFieldName(fe.Field())
		switch fe.Tag() {
		case "required", "min":
			details = append(details, fmt.Sprintf("field %q is required", field))
		case "msisdn":
			details = append(details, fmt.Sprintf("field %q must match ^\\+\\d+$", field))
		case "utcsecond":
			details = append(details, fmt.Sprintf("field %q must be a UTC timestamp like 2025-01-15T10:00:00Z", field))
		case "max":
			details = append(details, fmt.Sprintf("field %q must be at most %s characters", field, fe.Param()))
		default:
			details = append(details, fmt.Sprintf("field %q is invalid", field))
		}
	}
	return strings.Join(details, "; ")
}

// wireFieldName maps struct field names back to their JSON wire names.
func wireFieldName(structField string) string {
	switch structField {
	case "MessageID":
		return "message_id"
	case "Sender":
		return "from"
	case "To":
		return "to"
	case "Timestamp":
		return "ts"
	case "Text":
		return "text"
	default:
		return structField
	}
}
