// Package client is the Go counterpart of the web app's question store: a
// thin API client plus a cached copy of the topic tree that survives restarts.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"codolio/internal/domain/models"
	"codolio/internal/service"
)

// Client talks to the question tracker API. All methods unwrap the response
// envelope and surface the server's error string on failure.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates an API client for the given base URL (scheme + host, no
// trailing slash).
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// envelope mirrors the server's uniform response wrapper with the payload
// left raw so each call site decodes its own shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// do issues a request and decodes the envelope. out may be nil for calls
// that only care about success.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}

	if !env.Success {
		detail := env.Error
		if detail == "" {
			detail = resp.Status
		}
		return fmt.Errorf("%s %s: %s", method, path, detail)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode payload: %w", method, path, err)
		}
	}

	return nil
}

// questionsPath returns the question collection path for an owner.
func questionsPath(owner models.Owner) string {
	if owner.Kind == models.OwnerSubTopic {
		return fmt.Sprintf("/api/topics/%s/subtopics/%s/questions", owner.TopicID, owner.SubTopicID)
	}
	return fmt.Sprintf("/api/topics/%s/questions", owner.TopicID)
}

// GetTopics fetches the full expanded tree.
func (c *Client) GetTopics(ctx context.Context) ([]models.TreeTopic, error) {
	var topics []models.TreeTopic
	if err := c.do(ctx, http.MethodGet, "/api/topics", nil, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// CreateTopic creates a topic and returns it with empty children.
func (c *Client) CreateTopic(ctx context.Context, req *service.CreateTopicRequest) (*models.TreeTopic, error) {
	var topic models.TreeTopic
	if err := c.do(ctx, http.MethodPost, "/api/topics", req, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// UpdateTopic updates a topic's title and description.
func (c *Client) UpdateTopic(ctx context.Context, topicID string, req *service.UpdateTopicRequest) error {
	return c.do(ctx, http.MethodPut, "/api/topics/"+topicID, req, nil)
}

// DeleteTopic removes a topic and everything under it.
func (c *Client) DeleteTopic(ctx context.Context, topicID string) error {
	return c.do(ctx, http.MethodDelete, "/api/topics/"+topicID, nil, nil)
}

// ReorderTopics submits a new top-level order.
func (c *Client) ReorderTopics(ctx context.Context, orderedIDs []string) error {
	return c.do(ctx, http.MethodPut, "/api/topics/reorder", &service.ReorderRequest{OrderedIDs: orderedIDs}, nil)
}

// CreateSubTopic creates a sub-topic under a topic.
func (c *Client) CreateSubTopic(ctx context.Context, topicID string, req *service.CreateSubTopicRequest) (*models.TreeSubTopic, error) {
	var sub models.TreeSubTopic
	if err := c.do(ctx, http.MethodPost, "/api/topics/"+topicID+"/subtopics", req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateSubTopic renames a sub-topic.
func (c *Client) UpdateSubTopic(ctx context.Context, topicID, subTopicID string, req *service.UpdateSubTopicRequest) error {
	return c.do(ctx, http.MethodPut, "/api/topics/"+topicID+"/subtopics/"+subTopicID, req, nil)
}

// DeleteSubTopic removes a sub-topic and its questions.
func (c *Client) DeleteSubTopic(ctx context.Context, topicID, subTopicID string) error {
	return c.do(ctx, http.MethodDelete, "/api/topics/"+topicID+"/subtopics/"+subTopicID, nil, nil)
}

// ReorderSubTopics submits a new sub-topic order for a topic.
func (c *Client) ReorderSubTopics(ctx context.Context, topicID string, orderedIDs []string) error {
	return c.do(ctx, http.MethodPut, "/api/topics/"+topicID+"/subtopics/reorder", &service.ReorderRequest{OrderedIDs: orderedIDs}, nil)
}

// CreateQuestion creates a question under the owner.
func (c *Client) CreateQuestion(ctx context.Context, owner models.Owner, req *service.CreateQuestionRequest) (*models.TreeQuestion, error) {
	var q models.TreeQuestion
	if err := c.do(ctx, http.MethodPost, questionsPath(owner), req, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuestion applies a partial update and returns the question's wire form.
func (c *Client) UpdateQuestion(ctx context.Context, owner models.Owner, questionID string, req *service.UpdateQuestionRequest) (*models.TreeQuestion, error) {
	var q models.TreeQuestion
	if err := c.do(ctx, http.MethodPut, questionsPath(owner)+"/"+questionID, req, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// ToggleSolved flips a question's solved flag and returns the new value.
func (c *Client) ToggleSolved(ctx context.Context, owner models.Owner, questionID string) (bool, error) {
	var out struct {
		ID       string `json:"_id"`
		IsSolved bool   `json:"isSolved"`
	}
	if err := c.do(ctx, http.MethodPatch, questionsPath(owner)+"/"+questionID+"/toggle", nil, &out); err != nil {
		return false, err
	}
	return out.IsSolved, nil
}

// ToggleStarred flips a question's starred flag and returns the new value.
func (c *Client) ToggleStarred(ctx context.Context, owner models.Owner, questionID string) (bool, error) {
	var out struct {
		ID        string `json:"_id"`
		IsStarred bool   `json:"isStarred"`
	}
	if err := c.do(ctx, http.MethodPatch, questionsPath(owner)+"/"+questionID+"/star", nil, &out); err != nil {
		return false, err
	}
	return out.IsStarred, nil
}

// SetNotes replaces a question's notes.
func (c *Client) SetNotes(ctx context.Context, owner models.Owner, questionID, notes string) error {
	return c.do(ctx, http.MethodPatch, questionsPath(owner)+"/"+questionID+"/notes", &service.NotesRequest{Notes: notes}, nil)
}

// DeleteQuestion removes a question from the owner.
func (c *Client) DeleteQuestion(ctx context.Context, owner models.Owner, questionID string) error {
	return c.do(ctx, http.MethodDelete, questionsPath(owner)+"/"+questionID, nil, nil)
}

// ReorderQuestions submits a new question order for the owner.
func (c *Client) ReorderQuestions(ctx context.Context, owner models.Owner, orderedIDs []string) error {
	return c.do(ctx, http.MethodPut, questionsPath(owner)+"/reorder", &service.ReorderRequest{OrderedIDs: orderedIDs}, nil)
}

// ResetProgress clears every solved flag server-side.
func (c *Client) ResetProgress(ctx context.Context) error {
	return c.do(ctx, http.MethodPatch, "/api/system/reset-progress", nil, nil)
}

// FullReset wipes the server store and reseeds it from its sheet.
func (c *Client) FullReset(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/system/full-reset", nil, nil)
}

// Wipe deletes every server-side record without reseeding.
func (c *Client) Wipe(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/reset", nil, nil)
}

// Stats fetches the aggregate progress counts.
func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Health checks server liveness.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}
