package domain

import (
	"strings"
	"unicode/utf8"
)

// AuthStage is the ordered derived state an identity progresses through.
// Verification strictly precedes onboarding; both precede Ready.
type AuthStage int

const (
	StageUnauthenticated AuthStage = iota
	StageEmailUnverified
	StageOnboardingIncomplete
	StageReady
)

func (s AuthStage) String() string {
	switch s {
	case StageEmailUnverified:
		return "email-unverified"
	case StageOnboardingIncomplete:
		return "onboarding-incomplete"
	case StageReady:
		return "ready"
	default:
		return "unauthenticated"
	}
}

// AuthStep is the routing-relevant label for a stage, shared by the facade
// and the route guards so the two can never drift apart.
type AuthStep string

const (
	StepSignIn      AuthStep = "signin"
	StepVerifyEmail AuthStep = "verify-email"
	StepWelcome     AuthStep = "welcome"
	StepComplete    AuthStep = "complete"
)

// DisplayNameFallback is shown when a user has neither a name nor an email.
const DisplayNameFallback = "Usuario"

// DefaultRole is assumed when a user carries no role metadata.
const DefaultRole = "user"

// IsEmailVerified reports whether the user's email has been confirmed.
func IsEmailVerified(u *User) bool {
	return u != nil && u.EmailConfirmedAt != nil
}

// IsOnboardingComplete reports whether the user finished the welcome flow.
func IsOnboardingComplete(u *User) bool {
	return u.MetaBool(MetaOnboardingCompleted)
}

// IsUserReady reports full product access: authenticated, verified, onboarded.
func IsUserReady(u *User) bool {
	return u != nil && IsEmailVerified(u) && IsOnboardingComplete(u)
}

// Stage derives the auth stage from the current user. The ordering is strict:
// a stage is never reached without its predecessor's condition holding.
func Stage(u *User) AuthStage {
	switch {
	case u == nil:
		return StageUnauthenticated
	case !IsEmailVerified(u):
		return StageEmailUnverified
	case !IsOnboardingComplete(u):
		return StageOnboardingIncomplete
	default:
		return StageReady
	}
}

// Step maps a stage to its routing label.
func Step(u *User) AuthStep {
	switch Stage(u) {
	case StageUnauthenticated:
		return StepSignIn
	case StageEmailUnverified:
		return StepVerifyEmail
	case StageOnboardingIncomplete:
		return StepWelcome
	default:
		return StepComplete
	}
}

// Role returns the user's role metadata, defaulting to DefaultRole.
func Role(u *User) string {
	if r := u.MetaString(MetaRole); r != "" {
		return r
	}
	return DefaultRole
}

// DisplayName picks the first of full name, first name, the local part of the
// email, then the fixed fallback.
func DisplayName(u *User) string {
	if name := u.MetaString(MetaFullName); name != "" {
		return name
	}
	if name := u.MetaString(MetaFirstName); name != "" {
		return name
	}
	if u != nil && u.Email != "" {
		return strings.SplitN(u.Email, "@", 2)[0]
	}
	return DisplayNameFallback
}

// Initials derives avatar initials from the display name: first letter of a
// single name token, first+last initials for several tokens, else the first
// letter of the email, else "?".
func Initials(u *User) string {
	name := u.MetaString(MetaFullName)
	if name == "" {
		name = u.MetaString(MetaFirstName)
	}
	if tokens := strings.Fields(name); len(tokens) > 0 {
		if len(tokens) == 1 {
			return firstLetter(tokens[0])
		}
		return firstLetter(tokens[0]) + firstLetter(tokens[len(tokens)-1])
	}
	if u != nil && u.Email != "" {
		return firstLetter(u.Email)
	}
	return "?"
}

// firstLetter returns the uppercased first rune. Byte slicing would corrupt
// names starting with an accented letter.
func firstLetter(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r))
}
