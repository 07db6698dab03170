package handler

import (
	"log/slog"
	"net/http"

	"codolio/internal/httputil"
	"codolio/internal/service"
)

// TopicHandler handles topic HTTP requests
type TopicHandler struct {
	topicService service.TopicService
	treeService  service.TreeService
	logger       *slog.Logger
}

// NewTopicHandler creates a new topic handler
func NewTopicHandler(topicService service.TopicService, treeService service.TreeService, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{
		topicService: topicService,
		treeService:  treeService,
		logger:       logger,
	}
}

// ListTopics returns the full topic tree
// GET /api/topics
func (h *TopicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	tree, err := h.treeService.GetTree(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, tree)
}

// CreateTopic creates a new topic at the end of the global order
// POST /api/topics
func (h *TopicHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTopicRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	topic, err := h.topicService.CreateTopic(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusCreated, topic)
}

// UpdateTopic applies a partial update
// PUT /api/topics/{topicId}
func (h *TopicHandler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("topicId")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Topic ID is required")
		return
	}

	var req service.UpdateTopicRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	topic, err := h.topicService.UpdateTopic(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, map[string]interface{}{
		"id":          topic.ID,
		"title":       topic.Title,
		"description": topic.Description,
		"status":      topic.Status,
	})
}

// DeleteTopic cascade-deletes a topic and everything it owns
// DELETE /api/topics/{topicId}
func (h *TopicHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("topicId")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Topic ID is required")
		return
	}

	if err := h.topicService.DeleteTopic(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Topic deleted")
}

// ReorderTopics overwrites the global topic order
// PUT /api/topics/reorder
func (h *TopicHandler) ReorderTopics(w http.ResponseWriter, r *http.Request) {
	var req service.ReorderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.topicService.ReorderTopics(r.Context(), req.OrderedIDs); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Topics reordered")
}
