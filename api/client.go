package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Client is the HTTP client for the study session backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	// clientID identifies this process in backend logs. It is generated per
	// run and carries no identity semantics.
	clientID string
}

// NewClient creates a new backend client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		clientID: uuid.NewString(),
	}
}

// do issues the request with the client ID header and returns the response.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Client-ID", c.clientID)
	return c.httpClient.Do(req)
}

// errorFromResponse normalizes a non-success HTTP status into an error
// carrying a body excerpt.
func errorFromResponse(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s returned status %d: %s", op, resp.StatusCode, string(body))
}

// isSuccess treats any 2xx response as success. The backend does not
// guarantee a specific status code for mutations.
func isSuccess(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// Health checks if the backend is reachable and healthy.
func (c *Client) Health() error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return errorFromResponse("health check", resp)
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListSessions retrieves all active sessions.
func (c *Client) ListSessions() ([]Session, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/sessions", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return nil, errorFromResponse("get sessions", resp)
	}

	var result sessionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Sessions, nil
}

// TrendingSessions retrieves the server-ranked trending subset.
func (c *Client) TrendingSessions() ([]Session, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/sessions/trending", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get trending sessions: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return nil, errorFromResponse("get trending sessions", resp)
	}

	var result trendingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.TrendingSessions, nil
}

// Login signs in with a bare username, creating the user server-side if it
// does not exist yet.
func (c *Client) Login(username string) (*User, error) {
	data, err := json.Marshal(map[string]string{"username": username})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return nil, errorFromResponse("login", resp)
	}

	var result loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result.User, nil
}

// CreateSession creates a new study session. The created session is returned
// when the backend includes one, but callers should repopulate their view via
// a refresh rather than relying on the body.
func (c *Client) CreateSession(create CreateSessionRequest) (*Session, error) {
	data, err := json.Marshal(create)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/sessions", bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return nil, errorFromResponse("create session", resp)
	}

	var result createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// Any 2xx is success even if the body shape is unexpected.
		return nil, nil
	}
	return &result.Session, nil
}

// JoinSession adds username to the session's participants.
func (c *Client) JoinSession(sessionID, username string) error {
	return c.membership("join", sessionID, username)
}

// LeaveSession removes username from the session's participants.
func (c *Client) LeaveSession(sessionID, username string) error {
	return c.membership("leave", sessionID, username)
}

func (c *Client) membership(action, sessionID, username string) error {
	u := fmt.Sprintf("%s/api/sessions/%s/%s?username=%s",
		c.baseURL, url.PathEscape(sessionID), action, url.QueryEscape(username))

	req, err := http.NewRequest(http.MethodPost, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("failed to %s session: %w", action, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return errorFromResponse(action+" session", resp)
	}
	return nil
}

// DeleteSession removes a session.
func (c *Client) DeleteSession(sessionID string) error {
	u := c.baseURL + "/api/sessions/" + url.PathEscape(sessionID)
	req, err := http.NewRequest(http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return errorFromResponse("delete session", resp)
	}
	return nil
}
