package services

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var vnPhonePattern = regexp.MustCompile(`^0[35789][0-9]{8}$`)

// NormalizePhone strips whitespace, a spreadsheet escape quote and the +84
// country prefix. Applying it twice gives the same value.
func NormalizePhone(phone string) string {
	phone = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
	phone = strings.TrimLeft(phone, "'")
	if strings.HasPrefix(phone, "+84") {
		phone = "0" + strings.TrimPrefix(phone, "+84")
	}
	return phone
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewCustomID returns the public id embedded in QR codes.
func NewCustomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewValidator returns a validator that also knows the "vnphone" tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("vnphone", func(fl validator.FieldLevel) bool {
		return vnPhonePattern.MatchString(NormalizePhone(fl.Field().String()))
	})
	return v
}

type contactFields struct {
	Email string `validate:"omitempty,email"`
	Phone string `validate:"omitempty,vnphone"`
}

// formatProblems reports format issues as localized messages. Empty values are fine.
func formatProblems(v *validator.Validate, email, phone string) []string {
	var problems []string
	if err := v.Struct(contactFields{Email: strings.TrimSpace(email), Phone: phone}); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []string{err.Error()}
		}
		for _, fe := range verrs {
			switch fe.Field() {
			case "Email":
				problems = append(problems, MsgInvalidEmail)
			case "Phone":
				problems = append(problems, MsgInvalidPhone)
			}
		}
	}
	return problems
}
