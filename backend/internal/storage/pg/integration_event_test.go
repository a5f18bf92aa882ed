package pg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub-dev/coursehub/shared/domain"
)

func TestAppendEvent(t *testing.T) {
	resetTables(t)
	actor := domain.User{Id: 1, Username: "alice", Avatar: "a.png"}

	t.Run("CourseEvent", func(t *testing.T) {
		before := time.Now().UTC()
		stored, err := storage.AppendEvent(domain.NewPostEvent(actor, "CS101", 7))
		require.NoError(t, err)

		assert.Greater(t, stored.Id, int64(0))
		assert.Equal(t, domain.EventPost, stored.Kind)
		assert.Equal(t, "CS101", stored.CourseCode)
		assert.Equal(t, "alice posted in CS101", stored.Message)
		assert.WithinDuration(t, before, stored.OccurredAt, 5*time.Second)
	})

	t.Run("CourselessEvent", func(t *testing.T) {
		stored, err := storage.AppendEvent(domain.NewJoinEvent(actor))
		require.NoError(t, err)
		assert.Equal(t, domain.EventJoin, stored.Kind)
		assert.Empty(t, stored.CourseCode)
		assert.Nil(t, stored.CommentId)

		// Round-trips through the nullable column.
		events, err := storage.RecentEvents(1)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Empty(t, events[0].CourseCode)
	})

	t.Run("UnknownKindRejected", func(t *testing.T) {
		_, err := storage.AppendEvent(domain.Event{Kind: "upvote", Actor: actor, Message: "x"})
		assert.Error(t, err, "kind check constraint should reject unknown kinds")
	})
}

func TestRecentEvents(t *testing.T) {
	resetTables(t)
	actor := domain.User{Id: 1, Username: "alice"}

	var ids []domain.EventId
	for i := 0; i < 5; i++ {
		stored, err := storage.AppendEvent(domain.NewReplyEvent(actor, "CS101", domain.CommentId(i+1)))
		require.NoError(t, err)
		ids = append(ids, stored.Id)
		time.Sleep(5 * time.Millisecond)
	}

	events, err := storage.RecentEvents(3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, ids[4], events[0].Id, "newest first")
	assert.Equal(t, ids[3], events[1].Id)
	assert.Equal(t, ids[2], events[2].Id)
}

func TestEventsSince(t *testing.T) {
	resetTables(t)
	actor := domain.User{Id: 1, Username: "alice"}

	old, err := storage.AppendEvent(domain.NewPostEvent(actor, "CS101", 1))
	require.NoError(t, err)
	// Push the first event outside the window.
	_, err = storage.db.Exec("UPDATE events SET occurred_at = occurred_at - interval '8 days' WHERE id = $1", old.Id)
	require.NoError(t, err)

	fresh, err := storage.AppendEvent(domain.NewLikeEvent(actor, "CS101", 1))
	require.NoError(t, err)

	events, err := storage.EventsSince(time.Now().UTC().Add(-7 * 24 * time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 1, "events past the boundary must be excluded")
	assert.Equal(t, fresh.Id, events[0].Id)
	assert.Equal(t, domain.EventLike, events[0].Kind)
}
