package routes

import "github.com/SebastianBuritica/logistics-ai/domain"

// DecisionKind says what the router must do with a gated route.
type DecisionKind int

const (
	// Render serves the route content.
	Render DecisionKind = iota
	// Spinner serves the loading placeholder while auth state is unknown.
	Spinner
	// Redirect sends the visitor to Decision.Target.
	Redirect
)

// Decision is a guard verdict. Guards never mutate state; navigation is the
// router's job.
type Decision struct {
	Kind   DecisionKind
	Target string
	// From carries the originally requested path when a protected route
	// bounces to login, so sign-in can return there.
	From string
}

func render() Decision { return Decision{Kind: Render} }

func redirect(target string) Decision { return Decision{Kind: Redirect, Target: target} }

// Evaluate applies the route's guard to the derived stage. Path is the
// requested path, used only by the protected guard's login bounce.
func Evaluate(kind GuardKind, stage domain.AuthStage, loading bool, path string) Decision {
	switch kind {
	case GuardProtected:
		return protected(stage, loading, path)
	case GuardPublic:
		return public(stage)
	case GuardAuthOnly:
		return authOnly(stage)
	case GuardEmailVerification:
		return emailVerification(stage)
	case GuardOnboarding:
		return onboarding(stage)
	default:
		return render()
	}
}

// protected gates product pages. While loading nothing is decided yet, so it
// holds the visitor on a spinner instead of bouncing a possibly signed-in
// user to login.
func protected(stage domain.AuthStage, loading bool, path string) Decision {
	if loading {
		return Decision{Kind: Spinner}
	}
	switch stage {
	case domain.StageUnauthenticated:
		return Decision{Kind: Redirect, Target: PathLogin, From: path}
	case domain.StageEmailUnverified:
		return redirect(PathVerifyEmail)
	case domain.StageOnboardingIncomplete:
		return redirect(PathWelcome)
	default:
		return render()
	}
}

// public pages render for everyone except fully-ready users, who belong in
// the product.
func public(stage domain.AuthStage) Decision {
	if stage == domain.StageReady {
		return redirect(PathDashboard)
	}
	return render()
}

func authOnly(stage domain.AuthStage) Decision {
	if stage == domain.StageReady {
		return redirect(PathDashboard)
	}
	return render()
}

func emailVerification(stage domain.AuthStage) Decision {
	switch stage {
	case domain.StageUnauthenticated:
		return redirect(PathSignUp)
	case domain.StageEmailUnverified:
		return render()
	case domain.StageOnboardingIncomplete:
		return redirect(PathWelcome)
	default:
		return redirect(PathDashboard)
	}
}

func onboarding(stage domain.AuthStage) Decision {
	switch stage {
	case domain.StageUnauthenticated:
		return redirect(PathSignUp)
	case domain.StageEmailUnverified:
		return redirect(PathVerifyEmail)
	case domain.StageOnboardingIncomplete:
		return render()
	default:
		return redirect(PathDashboard)
	}
}
