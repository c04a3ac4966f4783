// Package session implements the conversation session lifecycle: issuing,
// recovering, expiring and persisting paper-scoped chat sessions.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hanjelito/hackatonNasa2025/domain"
	"github.com/hanjelito/hackatonNasa2025/store"
)

// Manager is the single authority on whether a token is valid now, and the
// only writer of session records.
//
// A session is Active while now - last_activity < timeout, and logically
// expired afterwards. Expired records are retained for history retrieval
// but are never revived: any recovery against them creates a replacement
// session under a fresh token.
type Manager struct {
	store   store.Store
	timeout time.Duration
	logger  *zap.Logger

	// now is the clock; replaceable in tests.
	now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager creates a lifecycle manager with the given idle timeout.
func NewManager(st store.Store, timeout time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:   st,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}
}

// SetClock replaces the manager's wall-clock source. Intended for tests.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// Obtain resolves the session for a paper. With no token, or with a token
// that is expired or unknown, it creates a fresh session (new token, empty
// history) and reports isNew = true. With an active token it refreshes
// last_activity and reports isNew = false. An expired record is left in
// place; it is never linked to its replacement.
func (m *Manager) Obtain(ctx context.Context, paperID, token string) (*domain.Session, bool, error) {
	if strings.TrimSpace(paperID) == "" {
		return nil, false, fmt.Errorf("paper_id is required: %w", domain.ErrInvalidInput)
	}

	if token != "" {
		existing, err := m.store.FindSession(ctx, token, paperID)
		if err != nil {
			return nil, false, fmt.Errorf("session lookup: %w", err)
		}
		if existing != nil && !m.expired(existing) {
			now := m.now().UTC()
			existing.LastActivity = now
			existing.UpdatedAt = now
			if err := m.store.SaveSession(ctx, existing); err != nil {
				return nil, false, fmt.Errorf("session refresh: %w", err)
			}
			return existing, false, nil
		}
		if existing != nil {
			m.logger.Info("session expired, issuing replacement",
				zap.String("paper_id", paperID),
				zap.Time("last_activity", existing.LastActivity))
		}
	}

	created, err := m.create(ctx, paperID)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// CommitTurn appends the client's new turns in their given order followed
// by the generated reply, bumps last_activity, and persists. The session
// must be Active at call time: if it expired (or vanished) between request
// start and commit, the commit fails with ErrSessionExpired and the stored
// history is unchanged. No replacement session is created here, because
// the reply was computed against context that may now be stale.
func (m *Manager) CommitTurn(ctx context.Context, token, paperID string, newTurns []domain.Turn, reply domain.Turn) (*domain.Session, error) {
	if err := domain.ValidateTurns(newTurns); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reply.Content) == "" {
		return nil, fmt.Errorf("empty reply: %w", domain.ErrInvalidInput)
	}

	lock := m.sessionLock(token, paperID)
	lock.Lock()
	defer lock.Unlock()

	session, err := m.store.FindSession(ctx, token, paperID)
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	if session == nil || m.expired(session) {
		m.dropSessionLock(token, paperID)
		return nil, domain.ErrSessionExpired
	}

	now := m.now().UTC()
	for _, t := range newTurns {
		t.Timestamp = now
		session.History = append(session.History, t)
	}
	reply.Role = domain.RoleModel
	reply.Timestamp = now
	session.History = append(session.History, reply)

	session.LastActivity = now
	session.UpdatedAt = now
	if err := m.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("session save: %w", err)
	}
	return session, nil
}

// History returns the full stored history for a paper's most recent
// session, expired or not. Absence is a normal outcome: no session yields
// an empty history, not an error.
func (m *Manager) History(ctx context.Context, paperID string) ([]domain.Turn, error) {
	if strings.TrimSpace(paperID) == "" {
		return nil, fmt.Errorf("paper_id is required: %w", domain.ErrInvalidInput)
	}
	session, err := m.store.LatestSession(ctx, paperID)
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	if session == nil {
		return []domain.Turn{}, nil
	}
	return session.History, nil
}

func (m *Manager) create(ctx context.Context, paperID string) (*domain.Session, error) {
	now := m.now().UTC()
	session := &domain.Session{
		Token:        uuid.New().String(),
		PaperID:      paperID,
		History:      []domain.Turn{},
		LastActivity: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := m.store.InsertSession(ctx, session); err != nil {
		return nil, fmt.Errorf("session create: %w", err)
	}
	return session, nil
}

// expired evaluates the idle timeout against the wall clock. All
// comparisons happen in UTC; timestamps lacking zone information were
// normalized on read.
func (m *Manager) expired(s *domain.Session) bool {
	return m.now().UTC().Sub(s.LastActivity.UTC()) >= m.timeout
}

// sessionLock returns the per-(token, paper) mutex, creating it on first
// use. Commits hold it so at most one writer mutates a session at a time.
// Entries are dropped once a commit observes the session expired, so the
// map tracks live sessions rather than every session ever committed.
func (m *Manager) sessionLock(token, paperID string) *sync.Mutex {
	key := token + "|" + paperID
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[key] = lock
	}
	return lock
}

// dropSessionLock removes an expired session's mutex. A concurrent commit
// against the same key re-creates the entry, finds the session expired
// again, and removes it again; no writer path remains for expired sessions.
func (m *Manager) dropSessionLock(token, paperID string) {
	key := token + "|" + paperID
	m.mu.Lock()
	delete(m.locks, key)
	m.mu.Unlock()
}
