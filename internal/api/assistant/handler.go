package assistant

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/odontosys/ai-backend/internal/entity"
	"github.com/odontosys/ai-backend/internal/pkg/logger"
	"github.com/odontosys/ai-backend/internal/pkg/response"
	"github.com/odontosys/ai-backend/internal/pkg/validator"
)

type Handler struct {
	usecase   AssistantUsecase
	validator *validator.Validator
}

func NewHandler(usecase AssistantUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

type operation func(ctx context.Context, req *entity.AIRequest) *entity.AIResponse

// GenerateClinicalEvolution handles POST /assistant/clinical-evolution
func (h *Handler) GenerateClinicalEvolution(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "GenerateClinicalEvolution", entity.RequestTypeClinicalEvolution, h.usecase.GenerateClinicalEvolution)
}

// SuggestDiagnosis handles POST /assistant/diagnosis
func (h *Handler) SuggestDiagnosis(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "SuggestDiagnosis", entity.RequestTypeDiagnosisSuggestion, h.usecase.SuggestDiagnosis)
}

// SuggestTreatmentPlan handles POST /assistant/treatment-plan
func (h *Handler) SuggestTreatmentPlan(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "SuggestTreatmentPlan", entity.RequestTypeTreatmentPlan, h.usecase.SuggestTreatmentPlan)
}

// AnalyzeNoShowRisk handles POST /assistant/no-show-risk
func (h *Handler) AnalyzeNoShowRisk(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "AnalyzeNoShowRisk", entity.RequestTypeNoShowRisk, h.usecase.AnalyzeNoShowRisk)
}

// GenerateFinancialInsights handles POST /assistant/financial-insights
func (h *Handler) GenerateFinancialInsights(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "GenerateFinancialInsights", entity.RequestTypeFinancialInsight, h.usecase.GenerateFinancialInsights)
}

// Chat handles POST /assistant/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "Chat", entity.RequestTypeChat, h.usecase.Chat)
}

// GenerateMessage handles POST /assistant/message
func (h *Handler) GenerateMessage(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "GenerateMessage", entity.RequestTypeMessageGeneration, h.usecase.GenerateMessage)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, action string, reqType entity.RequestType, op operation) {
	ctx := logger.WithAction(r.Context(), action)

	var dto AIRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := toEntityRequest(&dto)
	if req.Type == "" {
		// Route already identifies the operation; the type field is optional.
		req.Type = reqType
	}

	if err := h.validator.ValidateAIRequest(req); err != nil {
		ctxzap.Warn(ctx, "request validation failed", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := op(ctx, req)

	response.Success(w, toResponseDTO(resp))
}
