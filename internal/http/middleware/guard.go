package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/SebastianBuritica/logistics-ai/internal/navigation"
	"github.com/SebastianBuritica/logistics-ai/internal/routes"
	"github.com/SebastianBuritica/logistics-ai/internal/session"
)

// GuardMW wraps page routes with the access predicate matching their guard
// kind. Guards decide, the middleware navigates: redirect verdicts become 302
// responses, spinner verdicts a loading placeholder.
type GuardMW struct {
	store *session.Store
	orch  *navigation.Orchestrator
}

// NewGuardMW creates the route guard middleware.
func NewGuardMW(store *session.Store, orch *navigation.Orchestrator) *GuardMW {
	return &GuardMW{store: store, orch: orch}
}

// Guard returns the gin handler enforcing the given guard kind.
func (m *GuardMW) Guard(kind routes.GuardKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := m.store.Snapshot()
		decision := routes.Evaluate(kind, state.Stage(), state.Loading, c.Request.URL.Path)

		switch decision.Kind {
		case routes.Spinner:
			c.JSON(http.StatusOK, gin.H{"loading": true})
			c.Abort()
		case routes.Redirect:
			target := decision.Target
			if decision.From != "" {
				// Remember where the visitor wanted to go so sign-in can
				// return there.
				m.orch.RememberRedirect(c.Request.Context(), decision.From)
				target += "?returnUrl=" + url.QueryEscape(decision.From)
			}
			c.Redirect(http.StatusFound, target)
			c.Abort()
		default:
			c.Next()
		}
	}
}
