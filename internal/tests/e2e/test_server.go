package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpx "github.com/SebastianBuritica/logistics-ai/internal/http"
	"github.com/SebastianBuritica/logistics-ai/internal/http/handlers"
	"github.com/SebastianBuritica/logistics-ai/internal/http/middleware"
	"github.com/SebastianBuritica/logistics-ai/internal/infrastructure/auth"
	"github.com/SebastianBuritica/logistics-ai/internal/infrastructure/provider"
	"github.com/SebastianBuritica/logistics-ai/internal/infrastructure/repositories"
	"github.com/SebastianBuritica/logistics-ai/internal/infrastructure/storage"
	"github.com/SebastianBuritica/logistics-ai/internal/navigation"
	"github.com/SebastianBuritica/logistics-ai/internal/services"
	"github.com/SebastianBuritica/logistics-ai/internal/session"
)

// fakeProvider is an in-memory stand-in for the identity provider's REST API.
// It issues opaque tokens and tracks one account.
type fakeProvider struct {
	mu sync.Mutex

	email     string
	password  string
	confirmed bool
	metadata  map[string]interface{}
}

func (p *fakeProvider) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", p.signup)
	mux.HandleFunc("/auth/v1/otp", p.ok)
	mux.HandleFunc("/auth/v1/token", p.token)
	mux.HandleFunc("/auth/v1/logout", p.ok)
	mux.HandleFunc("/auth/v1/user", p.updateUser)
	mux.HandleFunc("/auth/v1/recover", p.ok)
	mux.HandleFunc("/auth/v1/resend", p.ok)
	return mux
}

func (p *fakeProvider) ok(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte("{}"))
}

func (p *fakeProvider) userJSON() map[string]interface{} {
	user := map[string]interface{}{
		"id":            "e2e-user-1",
		"email":         p.email,
		"user_metadata": p.metadata,
		"created_at":    time.Now().UTC(),
	}
	if p.confirmed {
		user["email_confirmed_at"] = time.Now().UTC()
	}
	return user
}

func (p *fakeProvider) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string                 `json:"email"`
		Password string                 `json:"password"`
		Data     map[string]interface{} `json:"data"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.email == req.Email {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"msg": "User already registered"})
		return
	}
	p.email = req.Email
	p.password = req.Password
	p.metadata = req.Data

	// Confirmation required: a bare user, no tokens.
	json.NewEncoder(w).Encode(p.userJSON())
}

func (p *fakeProvider) token(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	p.mu.Lock()
	defer p.mu.Unlock()

	if req.Email != p.email || req.Password != p.password {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"msg": "Invalid login credentials"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token":  "e2e-access-token",
		"refresh_token": "e2e-refresh-token",
		"token_type":    "bearer",
		"expires_in":    3600,
		"user":          p.userJSON(),
	})
}

func (p *fakeProvider) updateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data map[string]interface{} `json:"data"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.metadata == nil {
		p.metadata = map[string]interface{}{}
	}
	for k, v := range req.Data {
		p.metadata[k] = v
	}
	json.NewEncoder(w).Encode(p.userJSON())
}

// TestSuite wires the real stack against the fake provider and an in-process
// redis.
type TestSuite struct {
	Router   *gin.Engine
	Store    *session.Store
	Provider *fakeProvider
	Redis    *redis.Client
}

func NewTestSuite(t *testing.T) *TestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := &fakeProvider{}
	providerSrv := httptest.NewServer(fake.handler())
	t.Cleanup(providerSrv.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	providerClient := provider.NewClient(providerSrv.URL, "e2e-anon-key", 5*time.Second)
	storageClient := storage.NewClient(providerSrv.URL, "e2e-anon-key", 5*time.Second)
	stateRepo := repositories.NewStateRepository(rdb, "e2e", time.Hour)
	redirectRepo := repositories.NewRedirectRepository(rdb, "e2e", time.Hour)

	store := session.New(providerClient, storageClient, stateRepo, session.Options{
		Origin:       "https://app.test",
		AvatarBucket: "avatars",
	})
	store.Start()
	t.Cleanup(store.Close)

	cas, err := auth.NewCasbinService()
	if err != nil {
		t.Fatalf("failed to build enforcer: %v", err)
	}
	perms, err := services.NewPermissionService(cas.E)
	if err != nil {
		t.Fatalf("failed to build permission service: %v", err)
	}

	orch := navigation.NewOrchestrator(store, redirectRepo)
	authH := handlers.NewAuthHandlers(store, orch, perms, auth.NewSessionTokenService())
	guardMW := middleware.NewGuardMW(store, orch)

	return &TestSuite{
		Router:   httpx.BuildRouter(authH, guardMW),
		Store:    store,
		Provider: fake,
		Redis:    rdb,
	}
}

// WaitFor polls the store until the predicate holds.
func (s *TestSuite) WaitFor(t *testing.T, predicate func(session.State) bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if predicate(s.Store.Snapshot()) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for store state")
}

// SettleAnonymous ends the initial loading phase with a signed-out state.
func (s *TestSuite) SettleAnonymous(t *testing.T) {
	t.Helper()
	s.Store.Initialize(t.Context())
	s.WaitFor(t, func(st session.State) bool { return !st.Loading })
}
