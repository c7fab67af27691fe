// Package validation holds the form field validators. Messages are the
// user-facing Spanish strings; handlers return them verbatim.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Colombian phone format: +57 (XXX) XXX-XXXX and variations.
	phonePattern = regexp.MustCompile(`^(\+57\s?)?(\(?\d{3}\)?\s?)?\d{3}[-\s]?\d{4}$`)
	namePattern  = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]+$`)
	digitsOnly   = regexp.MustCompile(`[^0-9]`)

	lowercasePattern = regexp.MustCompile(`[a-z]`)
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
	digitPattern     = regexp.MustCompile(`[0-9]`)
	symbolPattern    = regexp.MustCompile(`[^A-Za-z0-9]`)
)

var (
	ErrEmailRequired    = errors.New("El email es requerido")
	ErrEmailInvalid     = errors.New("Por favor ingresa un email válido")
	ErrPasswordRequired = errors.New("La contraseña es requerida")
	ErrPasswordWeak     = errors.New("La contraseña debe tener al menos 12 caracteres, una minúscula y un número")
	ErrNameTooShort     = errors.New("El nombre debe tener al menos 2 caracteres")
	ErrNameTooLong      = errors.New("El nombre debe tener menos de 100 caracteres")
	ErrNameInvalid      = errors.New("El nombre solo puede contener letras y espacios")
	ErrPhoneInvalid     = errors.New("Por favor ingresa un número de teléfono válido")
	ErrCompanyTooShort  = errors.New("El nombre de la empresa debe tener al menos 2 caracteres")
	ErrCompanyTooLong   = errors.New("El nombre de la empresa debe tener menos de 200 caracteres")
	ErrNITInvalid       = errors.New("Por favor ingresa un NIT válido")
)

// Email validates an email address.
func Email(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// Password validates password strength: at least 12 characters, one lowercase
// letter and one digit.
func Password(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(PasswordIssues(password)) > 0 {
		return ErrPasswordWeak
	}
	return nil
}

// PasswordIssues lists every unmet password rule, for inline form feedback.
func PasswordIssues(password string) []string {
	var issues []string
	if utf8.RuneCountInString(password) < 12 {
		issues = append(issues, "Debe tener al menos 12 caracteres")
	}
	if !lowercasePattern.MatchString(password) {
		issues = append(issues, "Debe contener al menos una letra minúscula")
	}
	if !digitPattern.MatchString(password) {
		issues = append(issues, "Debe contener al menos un número")
	}
	return issues
}

// PasswordStrength scores a password 0..5 with a label for the strength
// meter.
func PasswordStrength(password string) (int, string) {
	if password == "" {
		return 0, ""
	}

	score := 0
	if utf8.RuneCountInString(password) >= 12 {
		score++
	}
	if lowercasePattern.MatchString(password) {
		score++
	}
	if uppercasePattern.MatchString(password) {
		score++
	}
	if digitPattern.MatchString(password) {
		score++
	}
	if symbolPattern.MatchString(password) {
		score++
	}

	switch {
	case score < 2:
		return score, "Débil"
	case score < 4:
		return score, "Media"
	default:
		return score, "Fuerte"
	}
}

// Name validates a person name: 2..100 characters, letters and spaces only.
func Name(name string) error {
	length := utf8.RuneCountInString(name)
	if length < 2 {
		return ErrNameTooShort
	}
	if length >= 100 {
		return ErrNameTooLong
	}
	if !namePattern.MatchString(name) {
		return ErrNameInvalid
	}
	return nil
}

// Phone validates an optional Colombian phone number. Empty is valid.
func Phone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return ErrPhoneInvalid
	}
	return nil
}

// CompanyName validates a company name: 2..200 characters.
func CompanyName(name string) error {
	length := utf8.RuneCountInString(name)
	if length < 2 {
		return ErrCompanyTooShort
	}
	if length >= 200 {
		return ErrCompanyTooLong
	}
	return nil
}

// NIT validates an optional Colombian tax id: 8..15 digits after stripping
// separators. Empty is valid.
func NIT(nit string) error {
	if nit == "" {
		return nil
	}
	digits := digitsOnly.ReplaceAllString(nit, "")
	if len(digits) < 8 || len(digits) > 15 {
		return ErrNITInvalid
	}
	return nil
}
