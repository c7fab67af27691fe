package routes

// Route paths. Handlers, guards and the orchestrator share these constants so
// a renamed path changes everywhere at once.
const (
	PathHome           = "/"
	PathSignUp         = "/auth/signup"
	PathLogin          = "/auth/login"
	PathVerifyEmail    = "/auth/verify-email"
	PathWelcome        = "/auth/welcome"
	PathCompanySetup   = "/auth/company-setup"
	PathForgotPassword = "/auth/forgot-password"
	PathResetPassword  = "/auth/reset-password"
	PathDashboard      = "/dashboard"
	PathFleet          = "/fleet"
	PathRoutes         = "/routes"
	PathShipments      = "/shipments"
	PathAnalytics      = "/analytics"
	PathSettings       = "/settings"
	PathNotFound       = "/404"
)
