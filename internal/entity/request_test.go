package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestTypeIsValid(t *testing.T) {
	valid := []RequestType{
		RequestTypeClinicalEvolution,
		RequestTypeDiagnosisSuggestion,
		RequestTypeTreatmentPlan,
		RequestTypeNoShowRisk,
		RequestTypeFinancialInsight,
		RequestTypeChat,
		RequestTypeMessageGeneration,
	}
	for _, rt := range valid {
		assert.True(t, rt.IsValid(), string(rt))
	}

	assert.False(t, RequestType("").IsValid())
	assert.False(t, RequestType("prescription").IsValid())
	assert.False(t, RequestType("Chat").IsValid())
}

func TestRequestConstructors(t *testing.T) {
	t.Run("clinical evolution", func(t *testing.T) {
		req := NewClinicalEvolutionRequest(
			map[string]any{"name": "Maria"},
			map[string]any{"type": "consulta"},
			[]map[string]any{{"name": "Profilaxia"}},
		)

		require.Equal(t, RequestTypeClinicalEvolution, req.Type)
		assert.Equal(t, map[string]any{"name": "Maria"}, req.Context["patient"])
		assert.Equal(t, map[string]any{"type": "consulta"}, req.Context["appointment"])
		assert.Len(t, req.Context["procedures"], 1)
	})

	t.Run("diagnosis", func(t *testing.T) {
		req := NewDiagnosisRequest([]string{"dor"}, map[string]any{"tooth": "26"}, nil)

		require.Equal(t, RequestTypeDiagnosisSuggestion, req.Type)
		assert.Equal(t, []string{"dor"}, req.Context["symptoms"])
		assert.Equal(t, map[string]any{"tooth": "26"}, req.Context["clinical_exam"])
	})

	t.Run("treatment plan", func(t *testing.T) {
		req := NewTreatmentPlanRequest([]string{"cárie"}, map[string]any{"26": "carie"}, nil)

		require.Equal(t, RequestTypeTreatmentPlan, req.Type)
		assert.Equal(t, []string{"cárie"}, req.Context["diagnosis"])
	})

	t.Run("no-show risk", func(t *testing.T) {
		req := NewNoShowRiskRequest(map[string]any{"date": "2026-09-01"}, nil)

		require.Equal(t, RequestTypeNoShowRisk, req.Type)
		assert.Contains(t, req.Context, "attendance_history")
	})

	t.Run("financial insight", func(t *testing.T) {
		req := NewFinancialInsightRequest("2026-08", map[string]any{"revenue": 1000})

		require.Equal(t, RequestTypeFinancialInsight, req.Type)
		assert.Equal(t, "2026-08", req.Context["period"])
	})

	t.Run("chat carries the message twice", func(t *testing.T) {
		req := NewChatRequest("qual o horário?", nil)

		require.Equal(t, RequestTypeChat, req.Type)
		assert.Equal(t, "qual o horário?", req.UserMessage)
		assert.Equal(t, "qual o horário?", req.Context["user_message"])
	})

	t.Run("message generation", func(t *testing.T) {
		req := NewMessageRequest("reminder", map[string]any{"name": "João"}, nil)

		require.Equal(t, RequestTypeMessageGeneration, req.Type)
		assert.Equal(t, "reminder", req.Context["message_kind"])
	})
}
