package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agrivision/agrivision/internal/domain/advisorchat"
	"github.com/agrivision/agrivision/internal/domain/i18n"
	apperrors "github.com/agrivision/agrivision/pkg/errors"
)

func TestManagerCreateSeedsGreeting(t *testing.T) {
	m := NewManager(30 * time.Minute)
	sess := m.Create(i18n.Hindi)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	require.NotEmpty(t, sess.id)
	require.Equal(t, i18n.Hindi, sess.language)
	require.Equal(t, PageDashboard, sess.page)
	require.Equal(t, AnalysisIdle, sess.analysisPhase)
	require.Equal(t, ModalClosed, sess.reportPhase)
	require.Equal(t, RegionIdle, sess.regionPhase)
	require.Len(t, sess.messages, 1)
	require.Equal(t, advisorchat.RoleModel, sess.messages[0].Role)
	require.Equal(t, i18n.Greeting(i18n.Hindi), sess.messages[0].Text)
}

func TestManagerGetUnknownSession(t *testing.T) {
	m := NewManager(30 * time.Minute)
	_, err := m.Get("nope")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeSessionNotFound))
}

func TestManagerEvictsIdleSessions(t *testing.T) {
	current := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	m := NewManager(30 * time.Minute)
	m.now = func() time.Time { return current }

	sess := m.Create(i18n.English)

	current = current.Add(10 * time.Minute)
	_, err := m.Get(sess.id)
	require.NoError(t, err)

	// The earlier Get refreshed lastSeen; expire from there.
	current = current.Add(31 * time.Minute)
	_, err = m.Get(sess.id)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeSessionNotFound))
}

func TestManagerGetRefreshesIdleTimer(t *testing.T) {
	current := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	m := NewManager(30 * time.Minute)
	m.now = func() time.Time { return current }

	sess := m.Create(i18n.English)

	for i := 0; i < 4; i++ {
		current = current.Add(20 * time.Minute)
		_, err := m.Get(sess.id)
		require.NoError(t, err)
	}
}
