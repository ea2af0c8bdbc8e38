package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/ai-backend/internal/entity"
	"github.com/odontosys/ai-backend/internal/pkg/validator"
)

type stubUsecase struct {
	lastReq *entity.AIRequest
	resp    *entity.AIResponse
}

func (s *stubUsecase) respond(_ context.Context, req *entity.AIRequest) *entity.AIResponse {
	s.lastReq = req
	if s.resp != nil {
		return s.resp
	}
	return entity.NewSuccessResponse(req.Type, "ok", 0.9, nil)
}

func (s *stubUsecase) GenerateClinicalEvolution(ctx context.Context, req *entity.AIRequest) *entity.AIResponse {
	return s.respond(ctx, req)
}
func (s *stubUsecase) SuggestDiagnosis(ctx context.Context, req *entity.AIRequest) *entity.AIResponse {
	return s.respond(ctx, req)
}
func (s *stubUsecase) SuggestTreatmentPlan(ctx context.Context, req *entity.AIRequest) *entity.AIResponse {
	return s.respond(ctx, req)
}
func (s *stubUsecase) AnalyzeNoShowRisk(ctx context.Context, req *entity.AIRequest) *entity.AIResponse {
	return s.respond(ctx, req)
}
func (s *stubUsecase) GenerateFinancialInsights(ctx context.Context, req *entity.AIRequest) *entity.AIResponse {
	return s.respond(ctx, req)
}
func (s *stubUsecase) Chat(ctx context.Context, req *entity.AIRequest) *entity.AIResponse {
	return s.respond(ctx, req)
}
func (s *stubUsecase) GenerateMessage(ctx context.Context, req *entity.AIRequest) *entity.AIResponse {
	return s.respond(ctx, req)
}

func newTestRouter(uc AssistantUsecase) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc, validator.NewValidator()))
	return r
}

func TestAssistantEndpoints(t *testing.T) {
	t.Run("chat returns the envelope with routing flags", func(t *testing.T) {
		stub := &stubUsecase{resp: entity.NewSuccessResponse(entity.RequestTypeChat, "olá!", 0.85, nil)}
		router := newTestRouter(stub)

		body := `{"user_message": "qual o horário de funcionamento?"}`
		req := httptest.NewRequest(http.MethodPost, "/assistant/chat", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var dto AIResponseDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
		assert.True(t, dto.Success)
		assert.Equal(t, "chat", dto.Type)
		assert.Equal(t, "olá!", dto.Content)
		assert.True(t, dto.IsHighConfidence)
		assert.False(t, dto.RequiresReview)
	})

	t.Run("route fills in the request type", func(t *testing.T) {
		stub := &stubUsecase{}
		router := newTestRouter(stub)

		body := `{"context": {"symptoms": ["dor"]}}`
		req := httptest.NewRequest(http.MethodPost, "/assistant/diagnosis", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, stub.lastReq)
		assert.Equal(t, entity.RequestTypeDiagnosisSuggestion, stub.lastReq.Type)
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		router := newTestRouter(&stubUsecase{})

		req := httptest.NewRequest(http.MethodPost, "/assistant/chat", strings.NewReader("{nope"))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("chat without user message is a 400", func(t *testing.T) {
		router := newTestRouter(&stubUsecase{})

		req := httptest.NewRequest(http.MethodPost, "/assistant/chat", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("failure envelopes still travel with HTTP 200", func(t *testing.T) {
		stub := &stubUsecase{resp: entity.NewFailureResponse(entity.RequestTypeChat, "rate limit exceeded")}
		router := newTestRouter(stub)

		body := `{"user_message": "oi"}`
		req := httptest.NewRequest(http.MethodPost, "/assistant/chat", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var dto AIResponseDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
		assert.False(t, dto.Success)
		assert.Equal(t, "rate limit exceeded", dto.Error)
		assert.True(t, dto.RequiresReview)
	})

	t.Run("all seven operations are routed", func(t *testing.T) {
		stub := &stubUsecase{}
		router := newTestRouter(stub)

		paths := map[string]entity.RequestType{
			"/assistant/clinical-evolution": entity.RequestTypeClinicalEvolution,
			"/assistant/diagnosis":          entity.RequestTypeDiagnosisSuggestion,
			"/assistant/treatment-plan":     entity.RequestTypeTreatmentPlan,
			"/assistant/no-show-risk":       entity.RequestTypeNoShowRisk,
			"/assistant/financial-insights": entity.RequestTypeFinancialInsight,
			"/assistant/chat":               entity.RequestTypeChat,
			"/assistant/message":            entity.RequestTypeMessageGeneration,
		}

		for path, reqType := range paths {
			body := `{"user_message": "oi", "context": {}}`
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code, path)
			assert.Equal(t, reqType, stub.lastReq.Type, path)
		}
	})
}
