package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agrivision/agrivision/internal/domain/advisorchat"
	"github.com/agrivision/agrivision/internal/domain/i18n"
	apperrors "github.com/agrivision/agrivision/pkg/errors"
	"github.com/agrivision/agrivision/pkg/util"
)

// Manager tracks live sessions in memory. Sessions never persist across a
// process restart; idle ones are evicted opportunistically on access.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewManager constructs the session registry.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      util.NowUTC,
	}
}

// Create opens a new session seeded with the language greeting.
func (m *Manager) Create(lang i18n.Language) *Session {
	now := m.now()
	sess := &Session{
		id:            uuid.NewString(),
		language:      lang,
		page:          PageDashboard,
		lastSeen:      now,
		analysisPhase: AnalysisIdle,
		reportPhase:   ModalClosed,
		regionPhase:   RegionIdle,
		messages: []advisorchat.Message{{
			ID:        uuid.NewString(),
			Role:      advisorchat.RoleModel,
			Text:      i18n.Greeting(lang),
			Timestamp: now,
		}},
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanupLocked(now)
	m.sessions[sess.id] = sess
	return sess
}

// Get resolves a session id, refreshing its idle timer.
func (m *Manager) Get(id string) (*Session, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanupLocked(now)
	sess, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.Wrap(apperrors.CodeSessionNotFound, "unknown or expired session", nil)
	}
	sess.mu.Lock()
	sess.lastSeen = now
	sess.mu.Unlock()
	return sess, nil
}

func (m *Manager) cleanupLocked(now time.Time) {
	for id, sess := range m.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.lastSeen)
		sess.mu.Unlock()
		if idle > m.ttl {
			delete(m.sessions, id)
		}
	}
}
