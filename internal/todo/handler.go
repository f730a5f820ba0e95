package todo

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"todoapi/internal/auth"
	"todoapi/internal/httputil"
	"todoapi/internal/logging"
)

// Handler contains HTTP handlers for the todo endpoints.
// All routes sit behind the auth middleware.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateRequest is the request body for creating a todo.
// Owner cannot be supplied; it is stamped from the authenticated identity.
type CreateRequest struct {
	Text string `json:"text"`
}

// UpdateRequest is the request body for a partial update.
// Absent fields are left untouched.
type UpdateRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type listResponse struct {
	Docs []Todo `json:"docs"`
}

type docResponse struct {
	Doc *Todo `json:"doc"`
}

// List handles GET /todos, scoped to the caller.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	caller, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	docs, err := h.service.List(r.Context(), caller.ID)
	if err != nil {
		logger.Error("failed to list todos", "error", err.Error())
		httputil.RespondError(w, "failed to list todos", http.StatusBadRequest)
		return
	}

	httputil.RespondJSON(w, listResponse{Docs: docs}, http.StatusOK)
}

// Create handles POST /todos.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	caller, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid create todo request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), caller.ID, req.Text)
	if err != nil {
		if errors.Is(err, ErrTextRequired) {
			logger.Warn("create todo failed: validation error")
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error("failed to create todo", "error", err.Error())
		httputil.RespondError(w, "failed to create todo", http.StatusBadRequest)
		return
	}

	logger.Info("todo created", "todo_id", created.ID.Hex())

	httputil.RespondJSON(w, created, http.StatusOK)
}

// Get handles GET /todos/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	caller, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, err := h.service.Get(r.Context(), id, caller.ID)
	if err != nil {
		h.respondLookupError(w, logger, err, "failed to get todo")
		return
	}

	httputil.RespondJSON(w, docResponse{Doc: doc}, http.StatusOK)
}

// Update handles PATCH /todos/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	caller, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid update todo request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	doc, err := h.service.Update(r.Context(), id, caller.ID, req.Text, req.Completed)
	if err != nil {
		if errors.Is(err, ErrTextRequired) {
			logger.Warn("update todo failed: validation error")
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.respondLookupError(w, logger, err, "failed to update todo")
		return
	}

	httputil.RespondJSON(w, docResponse{Doc: doc}, http.StatusOK)
}

// Delete handles DELETE /todos/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	caller, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, err := h.service.Delete(r.Context(), id, caller.ID)
	if err != nil {
		h.respondLookupError(w, logger, err, "failed to delete todo")
		return
	}

	logger.Info("todo deleted", "todo_id", doc.ID.Hex())

	httputil.RespondJSON(w, docResponse{Doc: doc}, http.StatusOK)
}

// pathID parses the {id} path parameter. A malformed id responds 404
// immediately, the same as a missing record.
func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "todo not found", http.StatusNotFound)
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondLookupError maps ErrNotFound to the merged 404 (absent and
// not-owned are indistinguishable) and everything else to a generic 400.
func (h *Handler) respondLookupError(w http.ResponseWriter, logger *logging.Logger, err error, msg string) {
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, "todo not found", http.StatusNotFound)
		return
	}
	logger.Error(msg, "error", err.Error())
	httputil.RespondError(w, msg, http.StatusBadRequest)
}
