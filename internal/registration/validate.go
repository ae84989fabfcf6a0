package registration

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field names one of the questionnaire answers. Values double as draft keys
// and as column names in storage.
type Field string

const (
	FieldFirstName    Field = "firstname"
	FieldLastName     Field = "lastname"
	FieldPhone        Field = "phone"
	FieldCompany      Field = "company"
	FieldActivityType Field = "activity_type"
)

// ValidationError describes a rejected answer. Message is user-facing HTML
// in the bot's language and is safe to send as-is.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return "registration: invalid " + string(e.Field)
}

// Code returns a stable identifier for log correlation.
func (e *ValidationError) Code() string {
	return "invalid_" + string(e.Field)
}

var (
	// Letters (Cyrillic or Latin), spaces and hyphens only.
	nameRe = regexp.MustCompile(`^[а-яёА-ЯЁa-zA-Z\s-]+$`)

	// Russian numbers with +7/7/8 prefix and common separator styles:
	// "+7 (912) 345-67-89", "89123456789", "7 912 345 67 89".
	phoneRe = regexp.MustCompile(`^(?:\+7|7|8)\s*\(?\d{3}\)?[\s.-]*\d{3}[\s.-]*\d{2}[\s.-]*\d{2}$`)
)

const retrySuffix = "\n\n <b>Попробуйте еще раз:</b>"

// Validate checks a raw user answer for the given field and returns the
// normalized (trimmed) value. On rejection the returned *ValidationError
// carries the reply text for the user.
func Validate(field Field, input string) (string, *ValidationError) {
	trimmed := strings.TrimSpace(input)

	switch field {
	case FieldFirstName:
		if utf8.RuneCountInString(trimmed) < 2 {
			return "", &ValidationError{Field: field, Message: "❌ Имя должно содержать минимум 2 символа." + retrySuffix}
		}
		if !nameRe.MatchString(trimmed) {
			return "", &ValidationError{Field: field, Message: "❌ Имя должно содержать только буквы. Попробуйте еще раз:"}
		}
	case FieldLastName:
		if utf8.RuneCountInString(trimmed) < 2 {
			return "", &ValidationError{Field: field, Message: "❌ Фамилия должна содержать минимум 2 символа." + retrySuffix}
		}
		if !nameRe.MatchString(trimmed) {
			return "", &ValidationError{Field: field, Message: "❌ Фамилия должна содержать только буквы. Попробуйте еще раз:"}
		}
	case FieldPhone:
		if !phoneRe.MatchString(trimmed) {
			return "", &ValidationError{Field: field, Message: "❌ Пожалуйста, введите корректный номер телефона." + retrySuffix}
		}
	case FieldCompany:
		if utf8.RuneCountInString(trimmed) < 2 {
			return "", &ValidationError{Field: field, Message: "❌ Название компании должно содержать минимум 2 символа." + retrySuffix}
		}
	case FieldActivityType:
		if utf8.RuneCountInString(trimmed) < 2 {
			return "", &ValidationError{Field: field, Message: "❌ Название сферы деятельности должно содержать минимум 2 символа." + retrySuffix}
		}
	default:
		return "", &ValidationError{Field: field, Message: "❌ Неизвестное поле анкеты."}
	}

	return trimmed, nil
}
