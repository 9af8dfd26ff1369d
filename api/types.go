package api

import "time"

// Session is a study session as owned by the backend. The client never
// mutates one; it only reflects the last fetched server value.
type Session struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CreatorUsername string     `json:"creator_username,omitempty"`
	DateTime        *time.Time `json:"date_time,omitempty"`
	Tags            []string   `json:"tags"`
	// ParticipantUsernames is the membership set, mutated only via
	// join/leave calls against the backend.
	ParticipantUsernames []string   `json:"participant_usernames"`
	CreatedAt            *time.Time `json:"created_at,omitempty"`
	// ParticipantCount is populated by the trending endpoint only.
	ParticipantCount int `json:"participant_count,omitempty"`
}

// HasParticipant reports whether username is a member of the session.
func (s *Session) HasParticipant(username string) bool {
	for _, u := range s.ParticipantUsernames {
		if u == username {
			return true
		}
	}
	return false
}

// User is the ephemeral identity returned by login. It parameterizes
// join/leave calls and membership tests; it is not a security credential.
type User struct {
	ID        string     `json:"id,omitempty"`
	Username  string     `json:"username"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// CreateSessionRequest is the payload for creating a session. DateTime is
// omitted entirely when the session is unscheduled.
type CreateSessionRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DateTime    *string  `json:"date_time,omitempty"`
	Tags        []string `json:"tags"`
}

type sessionsResponse struct {
	Sessions []Session `json:"sessions"`
}

type trendingResponse struct {
	TrendingSessions []Session `json:"trending_sessions"`
}

type loginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type createSessionResponse struct {
	Message string  `json:"message"`
	Session Session `json:"session"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
