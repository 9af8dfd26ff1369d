package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSessionsDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/sessions", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Client-ID"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"sessions": []map[string]interface{}{
				{
					"id":                    "s1",
					"title":                 "Calc Study",
					"description":           "Midterm prep",
					"tags":                  []string{"math", "calc"},
					"participant_usernames": []string{"ann"},
				},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	sessions, err := client.ListSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "s1", sessions[0].ID)
	assert.Equal(t, []string{"math", "calc"}, sessions[0].Tags)
	assert.True(t, sessions[0].HasParticipant("ann"))
	assert.False(t, sessions[0].HasParticipant("bob"))
}

func TestTrendingSessionsDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessions/trending", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"trending_sessions": []map[string]interface{}{
				{"id": "s2", "title": "Bio Lab", "description": "Chapter 5", "participant_count": 4},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	trending, err := client.TrendingSessions()
	require.NoError(t, err)
	require.Len(t, trending, 1)
	assert.Equal(t, 4, trending[0].ParticipantCount)
}

func TestLoginReturnsUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ann", body["username"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Login successful",
			"user":    map[string]string{"id": "u1", "username": "ann"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	user, err := client.Login("ann")
	require.NoError(t, err)
	assert.Equal(t, "ann", user.Username)
}

func TestCreateSessionSendsOptionalSchedule(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = map[string]interface{}{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Session created successfully",
			"session": map[string]interface{}{"id": "s9", "title": "New"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	t.Run("schedule present", func(t *testing.T) {
		dt := "2026-09-01T18:00:00Z"
		created, err := client.CreateSession(CreateSessionRequest{
			Title:       "New",
			Description: "desc",
			DateTime:    &dt,
			Tags:        []string{"math"},
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "s9", created.ID)
		assert.Equal(t, dt, got["date_time"])
	})

	t.Run("schedule absent is omitted", func(t *testing.T) {
		_, err := client.CreateSession(CreateSessionRequest{
			Title:       "New",
			Description: "desc",
			Tags:        []string{},
		})
		require.NoError(t, err)
		_, present := got["date_time"]
		assert.False(t, present)
	})
}

func TestJoinAndLeaveUseQueryParam(t *testing.T) {
	var gotPath, gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotPath = r.URL.Path
		gotUser = r.URL.Query().Get("username")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	require.NoError(t, client.JoinSession("s1", "ann"))
	assert.Equal(t, "/api/sessions/s1/join", gotPath)
	assert.Equal(t, "ann", gotUser)

	require.NoError(t, client.LeaveSession("s1", "ann"))
	assert.Equal(t, "/api/sessions/s1/leave", gotPath)
	assert.Equal(t, "ann", gotUser)
}

func TestDeleteSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/sessions/s1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "deleted"})
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).DeleteSession("s1"))
}

func TestNonSuccessStatusIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Session not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	err := client.JoinSession("missing", "ann")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "Session not found")

	_, err = client.ListSessions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestTransportErrorIsWrapped(t *testing.T) {
	// Point at a closed server to force a transport failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListSessions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get sessions")
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL).Health())
}
