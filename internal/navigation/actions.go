// Package navigation wraps the session store mutators with fixed post-success
// navigation rules. Failures never navigate; the caller shows the returned
// error where the action happened.
package navigation

import (
	"context"
	"log"

	"github.com/SebastianBuritica/logistics-ai/domain"
	"github.com/SebastianBuritica/logistics-ai/internal/routes"
	"github.com/SebastianBuritica/logistics-ai/internal/session"
)

// ResetEmailSentMessage confirms the recovery request on the login screen.
const ResetEmailSentMessage = "Te enviamos un enlace para restablecer tu contraseña"

// Navigation is where the caller goes after a successful action. External
// targets leave the application (provider OAuth redirects).
type Navigation struct {
	Path     string
	External bool
	// State travels with the navigation: the submitted email on the
	// verify-email screen, a confirmation message on login.
	State map[string]string
}

func internalNav(path string) *Navigation { return &Navigation{Path: path} }

// Orchestrator pairs each store mutator with its navigation rule.
type Orchestrator struct {
	store     *session.Store
	redirects domain.RedirectRepository
}

// NewOrchestrator creates an action orchestrator.
func NewOrchestrator(store *session.Store, redirects domain.RedirectRepository) *Orchestrator {
	return &Orchestrator{store: store, redirects: redirects}
}

// RememberRedirect stores the path a bounced visitor wanted, to be consumed
// once by the next successful sign-in.
func (o *Orchestrator) RememberRedirect(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := o.redirects.Store(ctx, path); err != nil {
		log.Printf("failed to store redirect url: %v", err)
	}
}

// SignUp registers an account and, on success, moves to the verify-email
// screen carrying the submitted address.
func (o *Orchestrator) SignUp(ctx context.Context, params domain.SignUpParams) (domain.AuthResult, *Navigation) {
	result := o.store.SignUp(ctx, params)
	if !result.OK() {
		return result, nil
	}
	return result, &Navigation{
		Path:  routes.PathVerifyEmail,
		State: map[string]string{"email": params.Email},
	}
}

// SignIn authenticates and, on success, resumes the stored return URL if one
// is pending. An explicit returnURL takes precedence over the stored slot;
// with neither, the destination is the dashboard. The stored slot is one-shot
// and is consumed even when overridden, so it cannot leak into a later
// sign-in.
func (o *Orchestrator) SignIn(ctx context.Context, params domain.SignInParams, returnURL string) (domain.AuthResult, *Navigation) {
	result := o.store.SignIn(ctx, params)
	if !result.OK() {
		return result, nil
	}

	stored, err := o.redirects.Take(ctx)
	if err != nil && err != domain.ErrRedirectNotFound {
		log.Printf("failed to take redirect url: %v", err)
	}

	target := routes.PathDashboard
	switch {
	case returnURL != "":
		target = returnURL
	case stored != "":
		target = stored
	}
	return result, internalNav(target)
}

// SignInWithOAuth starts an OAuth flow. The navigation is external; the
// session arrives later through the provider's auth-change push.
func (o *Orchestrator) SignInWithOAuth(ctx context.Context, provider, redirectTo string) (domain.AuthResult, *Navigation) {
	result := o.store.SignInWithOAuth(ctx, provider, redirectTo)
	if !result.OK() {
		return result, nil
	}
	return result, &Navigation{Path: result.Data.(string), External: true}
}

// SignOut ends the session and goes home.
func (o *Orchestrator) SignOut(ctx context.Context) (domain.AuthResult, *Navigation) {
	result := o.store.SignOut(ctx)
	if !result.OK() {
		return result, nil
	}
	return result, internalNav(routes.PathHome)
}

// UpdateProfile applies a profile change. An update that completes onboarding
// continues to company setup; any other update stays put.
func (o *Orchestrator) UpdateProfile(ctx context.Context, params domain.UpdateProfileParams) (domain.AuthResult, *Navigation) {
	result := o.store.UpdateProfile(ctx, params)
	if !result.OK() {
		return result, nil
	}
	if completed, ok := params.Metadata[domain.MetaOnboardingCompleted].(bool); ok && completed {
		return result, internalNav(routes.PathCompanySetup)
	}
	return result, nil
}

// ResetPassword requests a recovery email and returns to login with a
// confirmation message. The outcome is identical for known and unknown
// addresses.
func (o *Orchestrator) ResetPassword(ctx context.Context, email string) (domain.AuthResult, *Navigation) {
	result := o.store.ResetPassword(ctx, email)
	if !result.OK() {
		return result, nil
	}
	return result, &Navigation{
		Path:  routes.PathLogin,
		State: map[string]string{"message": ResetEmailSentMessage},
	}
}
