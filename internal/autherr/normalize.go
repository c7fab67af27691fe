// Package autherr maps raw identity-provider failures to the closed error
// taxonomy surfaced to callers. Provider messages are matched by substring
// against a fixed table; anything unmatched falls through to UNKNOWN_ERROR.
package autherr

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/SebastianBuritica/logistics-ai/domain"
)

// mapping is ordered: the first substring match wins.
var mapping = []struct {
	substr string
	code   domain.ErrorCode
}{
	{"Invalid login credentials", domain.ErrCodeInvalidCredentials},
	{"Email not confirmed", domain.ErrCodeEmailNotVerified},
	{"User not found", domain.ErrCodeUserNotFound},
	{"User already registered", domain.ErrCodeEmailAlreadyExists},
	{"Password should be at least", domain.ErrCodeWeakPassword},
	{"Unable to validate email", domain.ErrCodeEmailNotVerified},
}

// messages holds the user-facing text per code. The product ships in Spanish.
var messages = map[domain.ErrorCode]string{
	domain.ErrCodeInvalidCredentials: "Email o contraseña incorrectos. Por favor, verifica tus datos.",
	domain.ErrCodeEmailNotVerified:   "Tu email no ha sido verificado. Revisa tu bandeja de entrada.",
	domain.ErrCodeUserNotFound:       "No encontramos una cuenta con ese email. ¿Quieres crear una cuenta?",
	domain.ErrCodeEmailAlreadyExists: "Ya existe una cuenta con este email. ¿Quieres iniciar sesión?",
	domain.ErrCodeWeakPassword:       "La contraseña debe tener al menos 12 caracteres, una minúscula y un número.",
	domain.ErrCodeNetworkError:       "Error de conexión. Verifica tu internet e intenta de nuevo.",
	domain.ErrCodeNotAuthenticated:   "Usuario no autenticado",
	domain.ErrCodeUnknown:            "Ocurrió un error inesperado. Por favor, intenta de nuevo.",
}

// Normalize converts any provider-originated error into an AuthError. The
// original message is retained as diagnostic detail, never shown to the user.
func Normalize(err error) *domain.AuthError {
	if err == nil {
		return nil
	}

	code := classify(err)
	return &domain.AuthError{
		Code:    code,
		Message: Message(code),
		Detail:  err.Error(),
	}
}

// New builds an AuthError for a locally-detected failure of the given code.
func New(code domain.ErrorCode) *domain.AuthError {
	return &domain.AuthError{Code: code, Message: Message(code)}
}

// Message returns the localized user-facing text for a code.
func Message(code domain.ErrorCode) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[domain.ErrCodeUnknown]
}

func classify(err error) domain.ErrorCode {
	if errors.Is(err, domain.ErrNotAuthenticated) || errors.Is(err, domain.ErrNoUserEmail) {
		return domain.ErrCodeNotAuthenticated
	}
	if isNetworkError(err) {
		return domain.ErrCodeNetworkError
	}

	msg := err.Error()
	for _, m := range mapping {
		if strings.Contains(msg, m.substr) {
			return m.code
		}
	}
	return domain.ErrCodeUnknown
}

func isNetworkError(err error) bool {
	if errors.Is(err, domain.ErrProviderUnreachable) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
