package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/inventory"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/repository"
)

// SessionCookie names the cookie identifying a visitor's page.
const SessionCookie = "inventory_session"

// DefaultSessionTTL is how long an untouched page is kept.
const DefaultSessionTTL = 30 * time.Minute

// Session is one visitor's page and the client bound to it.
type Session struct {
	ID     string
	Page   *PageState
	Client *inventory.Client

	// submitMu keeps one submission's form values from being read by another.
	submitMu sync.Mutex
	lastSeen time.Time
}

// Submit records the posted values on the page and creates the product from
// exactly those values.
func (s *Session) Submit(ctx context.Context, values inventory.FormValues) error {
	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	s.Page.SetValues(values)
	return s.Client.SubmitValues(ctx, values)
}

// Sessions keeps page sessions in memory and forgets pages idle for longer
// than the TTL.
type Sessions struct {
	repo repository.ProductRepository
	log  *slog.Logger
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessions creates an empty session store whose clients use repo.
// A non-positive ttl uses DefaultSessionTTL.
func NewSessions(repo repository.ProductRepository, log *slog.Logger, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		repo:     repo,
		log:      log,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session named by the request cookie and marks it active.
// Sessions past their TTL are treated as gone even before a sweep.
func (s *Sessions) Get(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[cookie.Value]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(sess.lastSeen) > s.ttl {
		delete(s.sessions, sess.ID)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

// Ensure returns the visitor's session, opening a new page when there is none.
// Opening a page runs the client's initial load.
func (s *Sessions) Ensure(w http.ResponseWriter, r *http.Request) *Session {
	if sess, ok := s.Get(r); ok {
		return sess
	}

	sess := s.open(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Len reports the number of open pages.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops pages idle for longer than the TTL and returns how many it dropped.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.log.Info("idle pages evicted", "count", evicted, "open", len(s.sessions))
	}
	return evicted
}

// Run sweeps every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Sessions) open(ctx context.Context) *Session {
	page := &PageState{}
	sess := &Session{
		ID:   uuid.NewString(),
		Page: page,
	}
	sess.Client = inventory.New(inventory.Deps{
		Repo:    s.repo,
		Form:    page,
		List:    page,
		Confirm: requestConfirmer{},
		Logger:  s.log.With("session", sess.ID),
	})

	s.mu.Lock()
	sess.lastSeen = s.now()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.log.Info("page opened", "session", sess.ID)
	// Errors are logged by the client; the page opens with an empty list.
	_ = sess.Client.Load(ctx)
	return sess
}
