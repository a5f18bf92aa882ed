package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub-dev/coursehub/shared/api"
	"github.com/coursehub-dev/coursehub/shared/domain"
	internal_errors "github.com/coursehub-dev/coursehub/shared/errors"
)

func TestParseWindow(t *testing.T) {
	testCases := []struct {
		raw      string
		expected int
	}{
		{"7d", 7},
		{"30d", 30},
		{"7", 7},
		{" 14d ", 14},
		{"", 0},
		{"abc", 0},
		{"-3d", 0},
		{"0d", 0},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, parseWindow(tc.raw), "parseWindow(%q)", tc.raw)
	}
}

func TestGetTrendingHandler(t *testing.T) {
	t.Run("PassesWindowAndLimit", func(t *testing.T) {
		trending := &MockTrendingService{
			trendingFunc: func(windowDays, limit int) ([]domain.TrendingEntry, error) {
				assert.Equal(t, 3, windowDays)
				assert.Equal(t, 2, limit)
				return []domain.TrendingEntry{
					{CourseCode: "CS101", Score: 4.33},
					{CourseCode: "CS102", Score: 0.33},
				}, nil
			},
		}
		rr := doRequest(t, newTestRouter(testMocks{trending: trending}), "GET",
			"/api/community/trending?window=3d&limit=2", nil, false)

		require.Equal(t, http.StatusOK, rr.Code)
		var got []domain.TrendingEntry
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "CS101", got[0].CourseCode)
	})

	t.Run("DefaultsOnMissingParams", func(t *testing.T) {
		trending := &MockTrendingService{
			trendingFunc: func(windowDays, limit int) ([]domain.TrendingEntry, error) {
				assert.Equal(t, 0, windowDays, "zero means configured default")
				assert.Equal(t, 0, limit)
				return nil, nil
			},
		}
		rr := doRequest(t, newTestRouter(testMocks{trending: trending}), "GET",
			"/api/community/trending", nil, false)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("DependencyUnavailable", func(t *testing.T) {
		trending := &MockTrendingService{
			trendingFunc: func(int, int) ([]domain.TrendingEntry, error) {
				return nil, &internal_errors.DependencyError{Op: "trending", Err: errors.New("db down")}
			},
		}
		rr := doRequest(t, newTestRouter(testMocks{trending: trending}), "GET",
			"/api/community/trending", nil, false)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestGetActivityHandler(t *testing.T) {
	activity := &MockActivityService{
		recentFunc: func(limit int) ([]domain.Event, error) {
			assert.Equal(t, 5, limit)
			e := domain.NewPostEvent(domain.User{Id: 1, Username: "alice"}, "CS101", 1)
			e.OccurredAt = time.Now()
			return []domain.Event{e}, nil
		},
	}
	rr := doRequest(t, newTestRouter(testMocks{activity: activity}), "GET",
		"/api/community/activity?limit=5", nil, false)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "post", got[0]["type"])
	assert.Equal(t, "alice posted in CS101", got[0]["message"])
}

func TestGetDashboardHandler(t *testing.T) {
	trending := &MockTrendingService{
		trendingFunc: func(int, int) ([]domain.TrendingEntry, error) {
			return []domain.TrendingEntry{{CourseCode: "CS101", Score: 4}}, nil
		},
	}
	activity := &MockActivityService{
		recentFunc: func(limit int) ([]domain.Event, error) {
			assert.Equal(t, 10, limit, "dashboard always bundles 10 activity entries")
			return []domain.Event{}, nil
		},
	}
	thread := &MockThreadService{
		topThreadsFunc: func(limit int) ([]domain.Thread, error) {
			assert.Equal(t, 5, limit)
			return []domain.Thread{{CourseCode: "CS101"}}, nil
		},
	}

	rr := doRequest(t, newTestRouter(testMocks{trending: trending, activity: activity, thread: thread}), "GET",
		"/api/community/dashboard", nil, false)

	require.Equal(t, http.StatusOK, rr.Code)
	var got api.DashboardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Trending, 1)
	require.Len(t, got.TopThreads, 1)
	assert.NotNil(t, got.Activity)
}
