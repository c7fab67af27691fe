// Package session holds the authentication-state machine: the single mutable
// owner of {user, session, loading, operation flags, error}.
//
// Identity data (user, session) is written only by the auth-change consumer
// loop, which drains the provider's push channel and the store's own queue in
// one goroutine. Operation results never touch identity fields directly, so
// "what an operation returned" can never diverge from "what the provider
// later confirmed via event". Operation flags and the error slot are the only
// last-write-wins surface; callers avoid overlap by disabling the triggering
// control while the matching flag is up.
package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"sync"
	"time"

	"github.com/SebastianBuritica/logistics-ai/domain"
	"github.com/SebastianBuritica/logistics-ai/internal/autherr"
)

const queueBuffer = 16

// State is a point-in-time view of the store.
type State struct {
	User    *domain.User
	Session *domain.Session
	Loading bool

	IsAuthenticated      bool
	IsEmailVerified      bool
	IsOnboardingComplete bool

	Error *domain.AuthError

	SigningIn       bool
	SigningUp       bool
	SigningOut      bool
	UpdatingProfile bool
}

// IsUserReady reports full access: authenticated, verified and onboarded.
func (s State) IsUserReady() bool {
	return s.IsAuthenticated && s.IsEmailVerified && s.IsOnboardingComplete
}

// IsLoading reports the initial load or any in-flight operation.
func (s State) IsLoading() bool {
	return s.Loading || s.SigningIn || s.SigningUp || s.SigningOut || s.UpdatingProfile
}

// Step returns the routing label for the current stage.
func (s State) Step() domain.AuthStep { return domain.Step(s.User) }

// Stage returns the derived auth stage.
func (s State) Stage() domain.AuthStage { return domain.Stage(s.User) }

// Options configures a Store.
type Options struct {
	// Origin is the application origin used to build provider redirect URLs.
	Origin string
	// AvatarBucket is the storage bucket avatar uploads go to.
	AvatarBucket string
}

// Store is the session store. Construct with New, start the event consumer
// with Start, tear down with Close.
type Store struct {
	provider  domain.IdentityProvider
	storage   domain.FileStorage
	stateRepo domain.StateRepository
	opts      Options

	mu    sync.RWMutex
	state State

	queue     chan domain.AuthChange
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a session store. The store starts in loading state; the first
// auth-change event (normally from Initialize) clears it permanently.
func New(provider domain.IdentityProvider, storage domain.FileStorage, stateRepo domain.StateRepository, opts Options) *Store {
	return &Store{
		provider:  provider,
		storage:   storage,
		stateRepo: stateRepo,
		opts:      opts,
		state:     State{Loading: true},
		queue:     make(chan domain.AuthChange, queueBuffer),
		done:      make(chan struct{}),
	}
}

// Start launches the single consumer goroutine that drains auth-change
// events. It must be called exactly once before Initialize.
func (s *Store) Start() {
	s.wg.Add(1)
	go s.run()
}

// Close stops the consumer after draining pending events.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

func (s *Store) run() {
	defer s.wg.Done()

	for {
		select {
		case change := <-s.queue:
			s.apply(change)
		case change := <-s.provider.Events():
			s.apply(change)
		case <-s.done:
			for {
				select {
				case change := <-s.queue:
					s.apply(change)
				default:
					return
				}
			}
		}
	}
}

// apply is the only writer of user, session and the derived flags. The event
// session is copied first: the provider still owns the original, and the
// store must never write through its pointers.
func (s *Store) apply(change domain.AuthChange) {
	session := change.Session
	if session != nil {
		next := *session
		if next.User != nil {
			owned := *next.User
			if owned.Metadata == nil {
				owned.Metadata = domain.UserMetadata{}
			}
			next.User = &owned
		}
		session = &next
	}

	var user *domain.User
	if session != nil {
		user = session.User
	}

	s.mu.Lock()
	s.state.User = user
	s.state.Session = session
	s.state.IsAuthenticated = user != nil
	s.state.IsEmailVerified = domain.IsEmailVerified(user)
	s.state.IsOnboardingComplete = domain.IsOnboardingComplete(user)
	s.state.Loading = false
	s.mu.Unlock()

	s.persist(change.Event, session)

	email := ""
	if user != nil {
		email = user.Email
	}
	log.Printf("auth state changed: %s %s", change.Event, email)
}

// persist writes the {user, session} subset best-effort; failures are logged,
// never surfaced.
func (s *Store) persist(event domain.AuthEventType, session *domain.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if event == domain.SignedOutEvent || session == nil {
		if err := s.stateRepo.Clear(ctx); err != nil {
			log.Printf("failed to clear persisted auth state: %v", err)
		}
		return
	}

	snapshot := &domain.StateSnapshot{User: session.User, Session: session}
	if err := s.stateRepo.Save(ctx, snapshot); err != nil {
		log.Printf("failed to persist auth state: %v", err)
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Initialize primes state from the persisted snapshot, then establishes trust
// with a live session fetch. Loading terminates at false even when the fetch
// fails; that failure is logged, not surfaced as a user error.
func (s *Store) Initialize(ctx context.Context) {
	if snapshot, err := s.stateRepo.Load(ctx); err == nil && snapshot.Session != nil {
		if !snapshot.Session.Expired(time.Now()) {
			if _, err := s.provider.SetSession(ctx, snapshot.Session); err != nil {
				log.Printf("failed to resume persisted session: %v", err)
			} else {
				// Optimistic prime only; the live fetch below is what
				// re-establishes trust.
				s.mu.Lock()
				s.state.User = snapshot.User
				s.state.Session = snapshot.Session
				s.mu.Unlock()
			}
		}
	} else if err != nil && err != domain.ErrSnapshotNotFound {
		log.Printf("failed to load persisted auth state: %v", err)
	}

	live, err := s.provider.CurrentSession(ctx)
	if err != nil {
		log.Printf("error initializing auth: %v", err)
		s.mu.Lock()
		s.state.Loading = false
		s.mu.Unlock()
		return
	}

	if err := s.enqueue(domain.NewAuthChange(domain.InitialSessionEvent, live)); err != nil {
		log.Printf("dropping startup auth event: %v", err)
	}
}

func (s *Store) enqueue(change domain.AuthChange) error {
	select {
	case s.queue <- change:
		return nil
	case <-s.done:
		return domain.ErrStoreClosed
	}
}

// SignUp registers a new account. Without a password it falls back to the
// passwordless magic-link flow, creating the user when absent. Identity state
// is not touched here; it arrives via the auth-change event.
func (s *Store) SignUp(ctx context.Context, params domain.SignUpParams) domain.AuthResult {
	s.setFlags(func(st *State) { st.SigningUp = true; st.Error = nil })
	defer s.setFlags(func(st *State) { st.SigningUp = false })

	if params.Password == "" {
		if err := s.provider.SignInWithOTP(ctx, params.Email, true, params.Metadata); err != nil {
			return s.fail(err)
		}
		return domain.AuthResult{Data: params.Email}
	}

	session, err := s.provider.SignUp(ctx, params.Email, params.Password, params.Metadata)
	if err != nil {
		return s.fail(err)
	}
	return domain.AuthResult{Data: session}
}

// SignIn performs a password sign-in.
func (s *Store) SignIn(ctx context.Context, params domain.SignInParams) domain.AuthResult {
	s.setFlags(func(st *State) { st.SigningIn = true; st.Error = nil })
	defer s.setFlags(func(st *State) { st.SigningIn = false })

	session, err := s.provider.SignInWithPassword(ctx, params.Email, params.Password)
	if err != nil {
		return s.fail(err)
	}
	return domain.AuthResult{Data: session}
}

// SignInWithOAuth builds the provider redirect URL for an OAuth flow. No
// local state resolves here; the session arrives via the auth-change event
// after the redirect completes.
func (s *Store) SignInWithOAuth(ctx context.Context, oauthProvider, redirectTo string) domain.AuthResult {
	s.setFlags(func(st *State) { st.SigningIn = true; st.Error = nil })
	defer s.setFlags(func(st *State) { st.SigningIn = false })

	if redirectTo == "" {
		redirectTo = s.opts.Origin + "/auth/welcome"
	}
	url, err := s.provider.OAuthURL(oauthProvider, redirectTo)
	if err != nil {
		return s.fail(err)
	}
	return domain.AuthResult{Data: url}
}

// SignOut revokes the provider session and clears all persisted local state,
// so a stale session can never leak on the same device.
func (s *Store) SignOut(ctx context.Context) domain.AuthResult {
	s.setFlags(func(st *State) { st.SigningOut = true; st.Error = nil })
	defer s.setFlags(func(st *State) { st.SigningOut = false })

	token := ""
	if session := s.Snapshot().Session; session != nil {
		token = session.AccessToken
	}

	if err := s.provider.SignOut(ctx, token); err != nil {
		return s.fail(err)
	}

	if err := s.stateRepo.Clear(ctx); err != nil {
		log.Printf("failed to clear persisted auth state: %v", err)
	}
	return domain.AuthResult{}
}

// UpdateProfile applies a partial update to password, email or metadata.
func (s *Store) UpdateProfile(ctx context.Context, params domain.UpdateProfileParams) domain.AuthResult {
	s.setFlags(func(st *State) { st.UpdatingProfile = true; st.Error = nil })
	defer s.setFlags(func(st *State) { st.UpdatingProfile = false })

	token := ""
	if session := s.Snapshot().Session; session != nil {
		token = session.AccessToken
	}

	user, err := s.provider.UpdateUser(ctx, token, params)
	if err != nil {
		return s.fail(err)
	}
	return domain.AuthResult{Data: user}
}

// UploadAvatar stores the file under a collision-resistant key derived from
// the user id, the current time and the original extension, then patches the
// profile with the public URL. The two steps are not transactional: a patch
// failure leaves the uploaded object orphaned, which is logged for
// out-of-band reconciliation.
func (s *Store) UploadAvatar(ctx context.Context, filename string, body io.Reader, contentType string) domain.AuthResult {
	s.setFlags(func(st *State) { st.UpdatingProfile = true; st.Error = nil })
	defer s.setFlags(func(st *State) { st.UpdatingProfile = false })

	user := s.Snapshot().User
	if user == nil {
		return s.fail(domain.ErrNotAuthenticated)
	}

	key := fmt.Sprintf("%s-%d%s", user.ID, time.Now().UnixMilli(), path.Ext(filename))
	if err := s.storage.Upload(ctx, s.opts.AvatarBucket, key, body, contentType, true); err != nil {
		return s.fail(err)
	}

	publicURL := s.storage.PublicURL(s.opts.AvatarBucket, key)
	patch := domain.UpdateProfileParams{
		Metadata: domain.UserMetadata{domain.MetaAvatarURL: publicURL},
	}
	if result := s.UpdateProfile(ctx, patch); !result.OK() {
		log.Printf("avatar uploaded but profile patch failed, orphaned object %s/%s", s.opts.AvatarBucket, key)
		return result
	}

	return domain.AuthResult{Data: publicURL}
}

// ResendVerification re-sends the sign-up verification email. It fails fast
// locally when no user email is present, before any network call.
func (s *Store) ResendVerification(ctx context.Context) domain.AuthResult {
	s.setFlags(func(st *State) { st.Error = nil })

	user := s.Snapshot().User
	if user == nil || user.Email == "" {
		return s.fail(domain.ErrNoUserEmail)
	}

	if err := s.provider.ResendSignUpEmail(ctx, user.Email); err != nil {
		return s.fail(err)
	}
	return domain.AuthResult{Data: user.Email}
}

// ResetPassword requests a recovery email. The result shape is identical for
// known and unknown addresses; account existence is never observable here.
func (s *Store) ResetPassword(ctx context.Context, email string) domain.AuthResult {
	s.setFlags(func(st *State) { st.Error = nil })

	redirectTo := s.opts.Origin + "/auth/reset-password"
	if err := s.provider.ResetPasswordForEmail(ctx, email, redirectTo); err != nil {
		return s.fail(err)
	}
	return domain.AuthResult{Data: email}
}

// ClearError dismisses the current error. Idempotent.
func (s *Store) ClearError() {
	s.setFlags(func(st *State) { st.Error = nil })
}

func (s *Store) setFlags(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	s.mu.Unlock()
}

// fail normalizes an error into the single current-error slot and the uniform
// result shape. No provider failure ever escapes raw.
func (s *Store) fail(err error) domain.AuthResult {
	authErr := autherr.Normalize(err)
	s.setFlags(func(st *State) { st.Error = authErr })
	return domain.AuthResult{Err: authErr}
}
