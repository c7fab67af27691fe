package routes

import (
	"testing"

	"github.com/SebastianBuritica/logistics-ai/domain"
)

func TestProtectedGuard(t *testing.T) {
	tests := []struct {
		name     string
		stage    domain.AuthStage
		loading  bool
		expected Decision
	}{
		{
			name:     "loading holds on spinner",
			stage:    domain.StageUnauthenticated,
			loading:  true,
			expected: Decision{Kind: Spinner},
		},
		{
			name:     "anonymous visitor bounces to login carrying the origin path",
			stage:    domain.StageUnauthenticated,
			expected: Decision{Kind: Redirect, Target: PathLogin, From: PathFleet},
		},
		{
			name:     "unverified user bounces to verify-email",
			stage:    domain.StageEmailUnverified,
			expected: Decision{Kind: Redirect, Target: PathVerifyEmail},
		},
		{
			name:     "unboarded user bounces to welcome",
			stage:    domain.StageOnboardingIncomplete,
			expected: Decision{Kind: Redirect, Target: PathWelcome},
		},
		{
			name:     "ready user renders",
			stage:    domain.StageReady,
			expected: Decision{Kind: Render},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(GuardProtected, tt.stage, tt.loading, PathFleet)
			if got != tt.expected {
				t.Errorf("Evaluate = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestPublicAndAuthOnlyGuards(t *testing.T) {
	for _, kind := range []GuardKind{GuardPublic, GuardAuthOnly} {
		for _, stage := range []domain.AuthStage{
			domain.StageUnauthenticated,
			domain.StageEmailUnverified,
			domain.StageOnboardingIncomplete,
		} {
			if got := Evaluate(kind, stage, false, PathHome); got.Kind != Render {
				t.Errorf("guard %d stage %s: expected render, got %+v", kind, stage, got)
			}
		}
		got := Evaluate(kind, domain.StageReady, false, PathHome)
		if got.Kind != Redirect || got.Target != PathDashboard {
			t.Errorf("guard %d: ready user must bounce to dashboard, got %+v", kind, got)
		}
	}
}

func TestEmailVerificationGuard(t *testing.T) {
	tests := []struct {
		name     string
		stage    domain.AuthStage
		expected Decision
	}{
		{"anonymous bounces to signup", domain.StageUnauthenticated, redirect(PathSignUp)},
		{"unverified renders", domain.StageEmailUnverified, render()},
		{"verified but unboarded bounces to welcome", domain.StageOnboardingIncomplete, redirect(PathWelcome)},
		{"ready bounces to dashboard", domain.StageReady, redirect(PathDashboard)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(GuardEmailVerification, tt.stage, false, PathVerifyEmail)
			if got != tt.expected {
				t.Errorf("Evaluate = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestOnboardingGuard(t *testing.T) {
	tests := []struct {
		name     string
		stage    domain.AuthStage
		expected Decision
	}{
		{"anonymous bounces to signup", domain.StageUnauthenticated, redirect(PathSignUp)},
		{"unverified cannot skip ahead to welcome", domain.StageEmailUnverified, redirect(PathVerifyEmail)},
		{"verified but unboarded renders", domain.StageOnboardingIncomplete, render()},
		{"already onboarded bounces to dashboard", domain.StageReady, redirect(PathDashboard)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(GuardOnboarding, tt.stage, false, PathWelcome)
			if got != tt.expected {
				t.Errorf("Evaluate = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestLookupFallsBackToNotFound(t *testing.T) {
	route := Lookup("/does/not/exist")
	if route.Path != PathNotFound || route.Guard != GuardNone {
		t.Errorf("expected the not-found route, got %+v", route)
	}

	route = Lookup(PathDashboard)
	if route.Guard != GuardProtected {
		t.Errorf("expected dashboard to be protected, got %+v", route)
	}
	if route.Title == "" || route.Description == "" {
		t.Error("expected route metadata on table entries")
	}
}
