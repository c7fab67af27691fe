package routes

// GuardKind selects which access predicate gates a route.
type GuardKind int

const (
	// GuardNone renders unconditionally (fallback pages).
	GuardNone GuardKind = iota
	// GuardPublic renders for everyone except fully-ready users.
	GuardPublic
	// GuardAuthOnly gates signup/login style pages.
	GuardAuthOnly
	// GuardEmailVerification gates the verify-email page.
	GuardEmailVerification
	// GuardOnboarding gates the welcome flow.
	GuardOnboarding
	// GuardProtected gates product pages behind full readiness checks.
	GuardProtected
)

// Route is one entry of the static route table.
type Route struct {
	Path        string
	Guard       GuardKind
	Title       string
	Description string
}

// Table is the static route table: public, auth, protected and fallback
// groups.
var Table = []Route{
	{Path: PathHome, Guard: GuardPublic, Title: "LogisticsAI", Description: "Logística inteligente para tu flota"},

	{Path: PathSignUp, Guard: GuardAuthOnly, Title: "Crear cuenta", Description: "Regístrate en LogisticsAI"},
	{Path: PathLogin, Guard: GuardAuthOnly, Title: "Iniciar sesión", Description: "Accede a tu cuenta"},
	{Path: PathForgotPassword, Guard: GuardAuthOnly, Title: "Recuperar contraseña", Description: "Te enviamos un enlace de recuperación"},
	{Path: PathResetPassword, Guard: GuardAuthOnly, Title: "Nueva contraseña", Description: "Define tu nueva contraseña"},
	{Path: PathVerifyEmail, Guard: GuardEmailVerification, Title: "Verifica tu correo", Description: "Confirma tu dirección de correo"},
	{Path: PathWelcome, Guard: GuardOnboarding, Title: "Bienvenido", Description: "Completa tu perfil"},

	{Path: PathCompanySetup, Guard: GuardProtected, Title: "Configura tu empresa", Description: "Datos de tu empresa"},
	{Path: PathDashboard, Guard: GuardProtected, Title: "Panel", Description: "Resumen de tu operación"},
	{Path: PathFleet, Guard: GuardProtected, Title: "Flota", Description: "Gestión de vehículos"},
	{Path: PathRoutes, Guard: GuardProtected, Title: "Rutas", Description: "Planeación de rutas"},
	{Path: PathShipments, Guard: GuardProtected, Title: "Envíos", Description: "Seguimiento de envíos"},
	{Path: PathAnalytics, Guard: GuardProtected, Title: "Analítica", Description: "Métricas de tu operación"},
	{Path: PathSettings, Guard: GuardProtected, Title: "Ajustes", Description: "Configuración de la cuenta"},

	{Path: PathNotFound, Guard: GuardNone, Title: "Página no encontrada", Description: "La página que buscas no existe"},
}

// Lookup resolves a path to its route definition. Unknown paths resolve to
// the not-found route, like a wildcard entry.
func Lookup(path string) Route {
	for _, r := range Table {
		if r.Path == path {
			return r
		}
	}
	return Lookup(PathNotFound)
}
