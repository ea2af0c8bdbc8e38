package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/odontosys/ai-backend/internal/entity"
	"github.com/odontosys/ai-backend/internal/pkg/logger"
	"github.com/odontosys/ai-backend/internal/pkg/response"
	"github.com/odontosys/ai-backend/internal/pkg/validator"
)

type Handler struct {
	engine    KnowledgeEngine
	validator *validator.Validator
}

func NewHandler(engine KnowledgeEngine, validator *validator.Validator) *Handler {
	return &Handler{
		engine:    engine,
		validator: validator,
	}
}

// AddKnowledge handles POST /knowledge - ingest a new entry
func (h *Handler) AddKnowledge(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AddKnowledge")

	var dto AddKnowledgeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := toEntityInput(&dto)
	if err := h.validator.ValidateAddKnowledge(&input); err != nil {
		ctxzap.Warn(ctx, "request validation failed", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.engine.AddKnowledge(ctx, input)
	if err != nil {
		h.handleEngineError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "knowledge entry created", zap.String("id", entry.ID))

	response.Created(w, toEntryDTO(entry))
}

// UpdateKnowledge handles PUT /knowledge/{id} - replace entry content
func (h *Handler) UpdateKnowledge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entryID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("entry_id", entryID),
		zap.String("action", "UpdateKnowledge"),
	)

	var dto UpdateKnowledgeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateUpdateKnowledge(entryID, dto.Content); err != nil {
		ctxzap.Warn(ctx, "request validation failed", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.engine.UpdateKnowledge(ctx, entryID, dto.Content); err != nil {
		h.handleEngineError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "knowledge entry updated")

	response.NoContent(w)
}

// DeactivateKnowledge handles DELETE /knowledge/{id} - hide entry from retrieval
func (h *Handler) DeactivateKnowledge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entryID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("entry_id", entryID),
		zap.String("action", "DeactivateKnowledge"),
	)

	if err := h.engine.DeactivateKnowledge(ctx, entryID); err != nil {
		h.handleEngineError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "knowledge entry deactivated")

	response.NoContent(w)
}

// SearchKnowledge handles POST /knowledge/search - ranked retrieval
func (h *Handler) SearchKnowledge(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SearchKnowledge")

	var dto SearchKnowledgeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reqType := entity.RequestType(dto.Type)
	if !reqType.IsValid() {
		response.Error(w, http.StatusBadRequest, "unknown request type "+dto.Type)
		return
	}

	results, err := h.engine.Search(ctx, reqType, dto.Context, dto.Limit)
	if err != nil {
		h.handleEngineError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "knowledge search served", zap.Int("result_count", len(results)))

	response.Success(w, toSearchResponseDTO(dto.Type, results))
}

func (h *Handler) handleEngineError(ctx context.Context, w http.ResponseWriter, err error) {
	var validationErr *entity.ValidationError

	switch {
	case errors.Is(err, entity.ErrKnowledgeNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "knowledge entry not found", err)
	case errors.Is(err, entity.ErrEmptyContent), errors.Is(err, entity.ErrInvalidCategory),
		errors.Is(err, entity.ErrInvalidRequestType), errors.As(err, &validationErr):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	case entity.IsDependencyError(err):
		h.respondError(ctx, w, http.StatusBadGateway, "external dependency unavailable", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}
