package navigation

import (
	"context"
	"errors"
	"testing"

	"github.com/SebastianBuritica/logistics-ai/domain"
	"github.com/SebastianBuritica/logistics-ai/internal/mocks"
	"github.com/SebastianBuritica/logistics-ai/internal/routes"
	"github.com/SebastianBuritica/logistics-ai/internal/session"
)

func newTestOrchestrator(t *testing.T, provider *mocks.MockIdentityProvider) (*Orchestrator, *mocks.MockRedirectRepository) {
	t.Helper()

	store := session.New(provider, mocks.NewMockFileStorage(), mocks.NewMockStateRepository(), session.Options{
		Origin:       "https://app.test",
		AvatarBucket: "avatars",
	})
	store.Start()
	t.Cleanup(store.Close)

	redirects := mocks.NewMockRedirectRepository()
	return NewOrchestrator(store, redirects), redirects
}

func TestSignUpNavigatesToVerifyEmailWithAddress(t *testing.T) {
	provider := mocks.NewMockIdentityProvider()
	orch, _ := newTestOrchestrator(t, provider)

	result, nav := orch.SignUp(context.Background(), domain.SignUpParams{Email: "nueva@example.com"})
	if !result.OK() {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if nav == nil || nav.Path != routes.PathVerifyEmail {
		t.Fatalf("expected navigation to verify-email, got %+v", nav)
	}
	if nav.State["email"] != "nueva@example.com" {
		t.Errorf("expected the submitted email in navigation state, got %v", nav.State)
	}
}

func TestSignUpFailureNeverNavigates(t *testing.T) {
	provider := mocks.NewMockIdentityProvider()
	provider.SignInWithOTPFunc = func(ctx context.Context, email string, createUser bool, metadata domain.UserMetadata) error {
		return errors.New("User already registered")
	}
	orch, _ := newTestOrchestrator(t, provider)

	result, nav := orch.SignUp(context.Background(), domain.SignUpParams{Email: "nueva@example.com"})
	if result.OK() {
		t.Fatal("expected a failure result")
	}
	if nav != nil {
		t.Errorf("failures must not navigate, got %+v", nav)
	}
}

func TestSignInDefaultsToDashboard(t *testing.T) {
	provider := mocks.NewMockIdentityProvider()
	provider.SignInWithPasswordFunc = func(ctx context.Context, email, password string) (*domain.Session, error) {
		return &domain.Session{AccessToken: "t"}, nil
	}
	orch, _ := newTestOrchestrator(t, provider)

	result, nav := orch.SignIn(context.Background(), domain.SignInParams{Email: "a@b.co", Password: "x"}, "")
	if !result.OK() {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if nav == nil || nav.Path != routes.PathDashboard {
		t.Errorf("expected dashboard, got %+v", nav)
	}
}

func TestSignInResumesStoredRedirectOnce(t *testing.T) {
	provider := mocks.NewMockIdentityProvider()
	provider.SignInWithPasswordFunc = func(ctx context.Context, email, password string) (*domain.Session, error) {
		return &domain.Session{AccessToken: "t"}, nil
	}
	orch, _ := newTestOrchestrator(t, provider)
	ctx := context.Background()

	orch.RememberRedirect(ctx, routes.PathFleet)

	_, nav := orch.SignIn(ctx, domain.SignInParams{Email: "a@b.co", Password: "x"}, "")
	if nav == nil || nav.Path != routes.PathFleet {
		t.Fatalf("expected stored redirect, got %+v", nav)
	}

	_, nav = orch.SignIn(ctx, domain.SignInParams{Email: "a@b.co", Password: "x"}, "")
	if nav == nil || nav.Path != routes.PathDashboard {
		t.Errorf("the stored redirect is one-shot, second sign-in must default, got %+v", nav)
	}
}

func TestExplicitReturnURLWinsAndConsumesSlot(t *testing.T) {
	provider := mocks.NewMockIdentityProvider()
	provider.SignInWithPasswordFunc = func(ctx context.Context, email, password string) (*domain.Session, error) {
		return &domain.Session{AccessToken: "t"}, nil
	}
	orch, _ := newTestOrchestrator(t, provider)
	ctx := context.Background()

	orch.RememberRedirect(ctx, routes.PathFleet)

	_, nav := orch.SignIn(ctx, domain.SignInParams{Email: "a@b.co", Password: "x"}, routes.PathSettings)
	if nav == nil || nav.Path != routes.PathSettings {
		t.Fatalf("expected explicit returnUrl to win, got %+v", nav)
	}

	_, nav = orch.SignIn(ctx, domain.SignInParams{Email: "a@b.co", Password: "x"}, "")
	if nav == nil || nav.Path != routes.PathDashboard {
		t.Errorf("the overridden slot must still be consumed, got %+v", nav)
	}
}

func TestSignInFailureLeavesRedirectStored(t *testing.T) {
	provider := mocks.NewMockIdentityProvider()
	provider.SignInWithPasswordFunc = func(ctx context.Context, email, password string) (*domain.Session, error) {
		return nil, errors.New("Invalid login credentials")
	}
	orch, redirects := newTestOrchestrator(t, provider)
	ctx := context.Background()

	orch.RememberRedirect(ctx, routes.PathFleet)

	result, nav := orch.SignIn(ctx, domain.SignInParams{Email: "a@b.co", Password: "x"}, "")
	if result.OK() || nav != nil {
		t.Fatal("expected failure without navigation")
	}

	stored, err := redirects.Take(ctx)
	if err != nil || stored != routes.PathFleet {
		t.Errorf("a failed sign-in must not consume the redirect, got %q err %v", stored, err)
	}
}

func TestOAuthNavigationIsExternal(t *testing.T) {
	provider := mocks.NewMockIdentityProvider()
	provider.OAuthURLFunc = func(oauthProvider, redirectTo string) (string, error) {
		return "https://provider.test/authorize?provider=" + oauthProvider, nil
	}
	orch, _ := newTestOrchestrator(t, provider)

	result, nav := orch.SignInWithOAuth(context.Background(), "google", "")
	if !result.OK() {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if nav == nil || !nav.External {
		t.Fatalf("expected an external navigation, got %+v", nav)
	}
	if nav.Path != "https://provider.test/authorize?provider=google" {
		t.Errorf("expected the provider URL, got %q", nav.Path)
	}
}

func TestSignOutGoesHome(t *testing.T) {
	provider := mocks.NewMockIdentityProvider()
	orch, _ := newTestOrchestrator(t, provider)

	result, nav := orch.SignOut(context.Background())
	if !result.OK() {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if nav == nil || nav.Path != routes.PathHome {
		t.Errorf("expected home, got %+v", nav)
	}
}

func TestOnboardingCompletingUpdateContinuesToCompanySetup(t *testing.T) {
	provider := mocks.NewMockIdentityProvider()
	provider.UpdateUserFunc = func(ctx context.Context, accessToken string, params domain.UpdateProfileParams) (*domain.User, error) {
		return domain.NewUser("user-1", params.Metadata), nil
	}
	orch, _ := newTestOrchestrator(t, provider)
	ctx := context.Background()

	_, nav := orch.UpdateProfile(ctx, domain.UpdateProfileParams{
		Metadata: domain.UserMetadata{domain.MetaOnboardingCompleted: true},
	})
	if nav == nil || nav.Path != routes.PathCompanySetup {
		t.Errorf("expected company-setup, got %+v", nav)
	}

	_, nav = orch.UpdateProfile(ctx, domain.UpdateProfileParams{
		Metadata: domain.UserMetadata{domain.MetaFullName: "María García"},
	})
	if nav != nil {
		t.Errorf("a plain profile update must stay put, got %+v", nav)
	}
}

func TestResetPasswordReturnsToLoginWithMessage(t *testing.T) {
	provider := mocks.NewMockIdentityProvider()
	orch, _ := newTestOrchestrator(t, provider)

	result, nav := orch.ResetPassword(context.Background(), "a@b.co")
	if !result.OK() {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if nav == nil || nav.Path != routes.PathLogin {
		t.Fatalf("expected login, got %+v", nav)
	}
	if nav.State["message"] != ResetEmailSentMessage {
		t.Errorf("expected the confirmation message, got %v", nav.State)
	}
}
