package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SebastianBuritica/logistics-ai/internal/session"
)

func postJSON(router http.Handler, target string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

// TestFullOnboardingJourney walks registration, verification, login and the
// onboarding-completing profile update end to end.
func TestFullOnboardingJourney(t *testing.T) {
	suite := NewTestSuite(t)
	suite.SettleAnonymous(t)

	// Registration without a password goes through the magic-link flow and
	// navigates to verify-email.
	w := postJSON(suite.Router, "/auth/register", map[string]interface{}{
		"email":          "nueva@example.com",
		"full_name":      "María García",
		"agree_to_terms": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "/auth/verify-email")
	assert.Contains(t, w.Body.String(), "nueva@example.com")

	// The provider account exists now; simulate the emailed confirmation and
	// a chosen password.
	suite.Provider.mu.Lock()
	suite.Provider.email = "nueva@example.com"
	suite.Provider.password = "contrasena123"
	suite.Provider.confirmed = true
	suite.Provider.mu.Unlock()

	w = postJSON(suite.Router, "/auth/login", map[string]interface{}{
		"email":    "nueva@example.com",
		"password": "contrasena123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "/dashboard")

	suite.WaitFor(t, func(st session.State) bool { return st.IsAuthenticated })

	// Verified but not onboarded: protected pages bounce to welcome.
	w = get(suite.Router, "/dashboard")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/welcome", w.Header().Get("Location"))

	// Completing onboarding continues to company setup.
	w = httptest.NewRecorder()
	body, _ := json.Marshal(map[string]interface{}{"onboarding_completed": true})
	req := httptest.NewRequest(http.MethodPatch, "/auth/profile", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	suite.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "/auth/company-setup")

	suite.WaitFor(t, func(st session.State) bool { return st.IsOnboardingComplete })

	// Fully ready: the dashboard renders and auth pages bounce away.
	w = get(suite.Router, "/dashboard")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(suite.Router, "/auth/login")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestLoginFailureKeepsVisitorOut(t *testing.T) {
	suite := NewTestSuite(t)
	suite.SettleAnonymous(t)

	suite.Provider.mu.Lock()
	suite.Provider.email = "maria@example.com"
	suite.Provider.password = "contrasena123"
	suite.Provider.confirmed = true
	suite.Provider.mu.Unlock()

	w := postJSON(suite.Router, "/auth/login", map[string]interface{}{
		"email":    "maria@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
	assert.NotContains(t, w.Body.String(), "Invalid login credentials")

	w = get(suite.Router, "/dashboard")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/auth/login")
}

func TestLogoutClearsStateAndRedis(t *testing.T) {
	suite := NewTestSuite(t)
	suite.SettleAnonymous(t)

	suite.Provider.mu.Lock()
	suite.Provider.email = "maria@example.com"
	suite.Provider.password = "contrasena123"
	suite.Provider.confirmed = true
	suite.Provider.metadata = map[string]interface{}{"onboarding_completed": true}
	suite.Provider.mu.Unlock()

	postJSON(suite.Router, "/auth/login", map[string]interface{}{
		"email":    "maria@example.com",
		"password": "contrasena123",
	})
	suite.WaitFor(t, func(st session.State) bool { return st.IsUserReady() })

	// The snapshot is persisted while signed in.
	require.Eventually(t, func() bool {
		exists, err := suite.Redis.Exists(t.Context(), "e2e:storage").Result()
		return err == nil && exists == 1
	}, 2*time.Second, 10*time.Millisecond)

	w := postJSON(suite.Router, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"path":"/"`)

	suite.WaitFor(t, func(st session.State) bool { return !st.IsAuthenticated })

	exists, err := suite.Redis.Exists(t.Context(), "e2e:storage").Result()
	require.NoError(t, err)
	assert.Zero(t, exists, "persisted snapshot must be cleared on sign-out")

	w = get(suite.Router, "/dashboard")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestReturnURLRoundTrip(t *testing.T) {
	suite := NewTestSuite(t)
	suite.SettleAnonymous(t)

	// The bounce stores the wanted path.
	w := get(suite.Router, "/fleet")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?returnUrl=%2Ffleet", w.Header().Get("Location"))

	suite.Provider.mu.Lock()
	suite.Provider.email = "maria@example.com"
	suite.Provider.password = "contrasena123"
	suite.Provider.confirmed = true
	suite.Provider.metadata = map[string]interface{}{"onboarding_completed": true}
	suite.Provider.mu.Unlock()

	w = postJSON(suite.Router, "/auth/login", map[string]interface{}{
		"email":    "maria@example.com",
		"password": "contrasena123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"path":"/fleet"`)
}

func TestResetPasswordDoesNotRevealAccounts(t *testing.T) {
	suite := NewTestSuite(t)
	suite.SettleAnonymous(t)

	suite.Provider.mu.Lock()
	suite.Provider.email = "real@x.com"
	suite.Provider.mu.Unlock()

	known := postJSON(suite.Router, "/auth/reset-password", map[string]string{"email": "real@x.com"})
	unknown := postJSON(suite.Router, "/auth/reset-password", map[string]string{"email": "unknown@x.com"})

	require.Equal(t, http.StatusOK, known.Code)
	require.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestMeEndpoint(t *testing.T) {
	suite := NewTestSuite(t)
	suite.SettleAnonymous(t)

	w := get(suite.Router, "/auth/me")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	suite.Provider.mu.Lock()
	suite.Provider.email = "maria@example.com"
	suite.Provider.password = "contrasena123"
	suite.Provider.confirmed = true
	suite.Provider.metadata = map[string]interface{}{
		"full_name":            "María del Carmen García",
		"role":                 "manager",
		"onboarding_completed": true,
	}
	suite.Provider.mu.Unlock()

	postJSON(suite.Router, "/auth/login", map[string]interface{}{
		"email":    "maria@example.com",
		"password": "contrasena123",
	})
	suite.WaitFor(t, func(st session.State) bool { return st.IsUserReady() })

	w = get(suite.Router, "/auth/me")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			DisplayName string   `json:"display_name"`
			Initials    string   `json:"initials"`
			Role        string   `json:"role"`
			Step        string   `json:"step"`
			Permissions []string `json:"permissions"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "María del Carmen García", resp.Data.DisplayName)
	assert.Equal(t, "MG", resp.Data.Initials)
	assert.Equal(t, "manager", resp.Data.Role)
	assert.Equal(t, "complete", resp.Data.Step)
	assert.Len(t, resp.Data.Permissions, 3)
}
