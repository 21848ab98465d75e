package taskboardsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/taskboard-api/models"
)

// Client is a minimal Taskboard GraphQL API client. It issues queries and
// mutations over HTTP and merges pushed subscription events into a Store.
type Client struct {
	BaseURL       string // HTTP GraphQL endpoint, e.g. http://localhost:8080/api/graphql
	WSURL         string // subscription endpoint, e.g. ws://localhost:3123/api/graphql
	BearerToken   string
	HTTPClient    *http.Client
	RetryAttempts int // reconnect cap for the subscription link
}

// New creates a client with sane defaults
func New(baseURL, wsURL string) *Client {
	return &Client{
		BaseURL:       baseURL,
		WSURL:         wsURL,
		HTTPClient:    &http.Client{Timeout: 10 * time.Second},
		RetryAttempts: 5,
	}
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// Execute runs one GraphQL operation. Resolver failures come back as a
// plain error carrying the server's message verbatim. Mutations that
// should suppress their own subscription echo pass a correlation id.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any, correlationID string) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	}
	if correlationID != "" {
		req.Header.Set("X-Correlation-ID", correlationID)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, errors.New(result.Errors[0].Message)
	}
	return result.Data, nil
}

// SignIn authenticates and installs the returned bearer token on the client
func (c *Client) SignIn(ctx context.Context, email, password string) (models.User, error) {
	data, err := c.Execute(ctx, `mutation SignIn($input: SignInInput!) {
		signIn(input: $input) { token user { id name email role } }
	}`, map[string]any{"input": map[string]any{"email": email, "password": password}}, "")
	if err != nil {
		return models.User{}, err
	}

	var payload struct {
		SignIn struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		} `json:"signIn"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.User{}, err
	}
	c.BearerToken = payload.SignIn.Token
	return payload.SignIn.User, nil
}

// Seed performs the initial full fetch of all three collections
func (c *Client) Seed(ctx context.Context, store *Store) error {
	data, err := c.Execute(ctx, `query Seed {
		projects { id name description createdAt }
		tasks { id title description status createdAt project { id } assignedTo { id } }
		users { id name email role createdAt }
	}`, nil, "")
	if err != nil {
		return err
	}

	var payload struct {
		Projects []models.Project `json:"projects"`
		Tasks    []models.Task    `json:"tasks"`
		Users    []models.User    `json:"users"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	for i := range payload.Tasks {
		normalizeTask(&payload.Tasks[i])
	}

	store.SeedProjects(payload.Projects)
	store.SeedTasks(payload.Tasks)
	store.SeedUsers(payload.Users)
	return nil
}

// CreateProject issues the mutation and inserts the result locally right
// away (the local create echo); the matching subscription event is
// suppressed by correlation id.
func (c *Client) CreateProject(ctx context.Context, store *Store, name, description string) (models.Project, error) {
	input := map[string]any{"name": name}
	if description != "" {
		input["description"] = description
	}

	correlationID := uuid.NewString()
	store.ExpectEcho(correlationID)

	data, err := c.Execute(ctx, `mutation CreateProject($input: CreateProjectInput!) {
		createProject(input: $input) { id name description createdAt }
	}`, map[string]any{"input": input}, correlationID)
	if err != nil {
		store.CancelEcho(correlationID)
		return models.Project{}, err
	}

	var payload struct {
		CreateProject models.Project `json:"createProject"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.Project{}, err
	}
	store.UpsertProject(payload.CreateProject)
	return payload.CreateProject, nil
}

// MoveTask is the drag-and-drop path: the local status flips before the
// server confirms, and flips back if the mutation fails.
func (c *Client) MoveTask(ctx context.Context, store *Store, taskID string, to models.TaskStatus) error {
	revert, ok := store.MoveTask(taskID, to)
	if !ok {
		return fmt.Errorf("task %s not loaded", taskID)
	}

	correlationID := uuid.NewString()
	store.ExpectEcho(correlationID)

	_, err := c.Execute(ctx, `mutation MoveTask($id: ID!, $input: UpdateTaskInput!) {
		updateTask(id: $id, input: $input) { id status }
	}`, map[string]any{"id": taskID, "input": map[string]any{"status": string(to)}}, correlationID)
	if err != nil {
		store.CancelEcho(correlationID)
		revert()
		return err
	}
	return nil
}

// Subscribe connects to the subscription endpoint, registers the given
// topics and merges pushed events into the store until ctx is cancelled.
// A dropped connection is retried with capped exponential backoff; once
// RetryAttempts connects in a row fail, the client gives up and stays
// disconnected from live updates (the caller should Seed again after a
// successful manual reconnect, since missed events are not replayed).
// A completed init/ack handshake starts a fresh retry budget, so transient
// drops spread over a long-lived link never exhaust it.
func (c *Client) Subscribe(ctx context.Context, store *Store, topics ...string) error {
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		acked, err := c.runSubscription(ctx, store, topics)
		if err == nil || ctx.Err() != nil {
			return ctx.Err()
		}
		if acked {
			attempts = 0
		}

		attempts++
		if attempts >= c.retryAttempts() {
			return fmt.Errorf("subscription link lost after %d attempts: %w", attempts, err)
		}

		// Exponential backoff, capped at 10s.
		wait := time.Duration(1<<uint(attempts)) * 500 * time.Millisecond
		if wait > 10*time.Second {
			wait = 10 * time.Second
		}
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// wsMessage mirrors the gateway's graphql-transport-ws frame
type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// runSubscription serves one connection until it drops. acked reports
// whether the init/ack handshake completed before the failure.
func (c *Client) runSubscription(ctx context.Context, store *Store, topics []string) (acked bool, err error) {
	header := http.Header{}
	if c.BearerToken != "" {
		header.Set("Authorization", "Bearer "+c.BearerToken)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.WSURL, header)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	// Close the connection when ctx ends so the read loop unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	if err := conn.WriteJSON(wsMessage{Type: "connection_init"}); err != nil {
		return false, err
	}
	var ack wsMessage
	if err := conn.ReadJSON(&ack); err != nil {
		return false, err
	}
	if ack.Type != "connection_ack" {
		return false, fmt.Errorf("expected connection_ack, got %q", ack.Type)
	}

	for i, topic := range topics {
		payload, err := json.Marshal(map[string]string{
			"query": fmt.Sprintf("subscription { %s { id } }", topic),
		})
		if err != nil {
			return true, err
		}
		msg := wsMessage{ID: fmt.Sprintf("sub-%d", i+1), Type: "subscribe", Payload: payload}
		if err := conn.WriteJSON(msg); err != nil {
			return true, err
		}
	}

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return true, err
		}

		switch msg.Type {
		case "next":
			c.applyNext(store, msg.Payload)
		case "ping":
			if err := conn.WriteJSON(wsMessage{Type: "pong"}); err != nil {
				return true, err
			}
		case "error":
			return true, fmt.Errorf("subscription error: %s", string(msg.Payload))
		}
	}
}

// applyNext merges one next frame into the store
func (c *Client) applyNext(store *Store, raw json.RawMessage) {
	var frame struct {
		Data       map[string]json.RawMessage `json:"data"`
		Extensions struct {
			CorrelationID string `json:"correlationId"`
		} `json:"extensions"`
	}
	if err := json.Unmarshal(raw, &frame); err != nil {
		return
	}

	for topic, payload := range frame.Data {
		evt, err := decodeEvent(topic, payload, frame.Extensions.CorrelationID)
		if err != nil {
			continue
		}
		store.Apply(evt)
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) retryAttempts() int {
	if c.RetryAttempts > 0 {
		return c.RetryAttempts
	}
	return 5
}
