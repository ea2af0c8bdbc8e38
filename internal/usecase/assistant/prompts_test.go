package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/ai-backend/internal/config"
	"github.com/odontosys/ai-backend/internal/entity"
)

func promptCfg() config.PromptConfig {
	return config.PromptConfig{
		Locale:           "pt-BR",
		Tone:             "profissional e acolhedor",
		Disclaimer:       "Conteúdo gerado por IA; revisão profissional obrigatória.",
		MaxContextLength: 6000,
	}
}

func TestBuildMessages(t *testing.T) {
	knowledge := []entity.KnowledgeResult{
		{Category: "protocols", Title: "Profilaxia antibiótica", Content: "Amoxicilina 2g uma hora antes."},
	}

	t.Run("system message carries tone, instruction, knowledge and disclaimer", func(t *testing.T) {
		req := entity.NewDiagnosisRequest([]string{"dor"}, nil, nil)

		messages := buildMessages(req, knowledge, promptCfg())

		require.NotEmpty(t, messages)
		require.Equal(t, entity.RoleSystem, messages[0].Role)

		system := messages[0].Content
		assert.Contains(t, system, "pt-BR")
		assert.Contains(t, system, "profissional e acolhedor")
		assert.Contains(t, system, typeInstructions[entity.RequestTypeDiagnosisSuggestion])
		assert.Contains(t, system, "[protocols] Profilaxia antibiótica")
		assert.Contains(t, system, "revisão profissional obrigatória")
		assert.Contains(t, system, `"confidence"`)
	})

	t.Run("non-chat requests serialize the context as the user turn", func(t *testing.T) {
		req := entity.NewFinancialInsightRequest("2026-08", map[string]any{"revenue": 5000})

		messages := buildMessages(req, nil, promptCfg())

		require.Len(t, messages, 2)
		assert.Equal(t, entity.RoleUser, messages[1].Role)
		assert.Contains(t, messages[1].Content, `"period":"2026-08"`)
	})

	t.Run("chat replays prior turns before the new message", func(t *testing.T) {
		req := entity.NewChatRequest("e para crianças?", []map[string]any{
			{"role": "user", "content": "qual a dose de amoxicilina?"},
			{"role": "assistant", "content": "2g uma hora antes do procedimento."},
		})

		messages := buildMessages(req, nil, promptCfg())

		require.Len(t, messages, 4)
		assert.Equal(t, entity.RoleUser, messages[1].Role)
		assert.Equal(t, entity.RoleAssistant, messages[2].Role)
		assert.Equal(t, entity.RoleUser, messages[3].Role)
		assert.Equal(t, "e para crianças?", messages[3].Content)
	})

	t.Run("knowledge context is truncated to the configured budget", func(t *testing.T) {
		cfg := promptCfg()
		cfg.MaxContextLength = 500

		long := []entity.KnowledgeResult{
			{Category: "general", Title: "Longo", Content: strings.Repeat("texto ", 500)},
		}

		messages := buildMessages(entity.NewChatRequest("oi", nil), long, cfg)

		// The rendered snippet inside the system prompt never exceeds the budget.
		assert.Less(t, len([]rune(messages[0].Content)), 500+400)
	})

	t.Run("empty retrieval omits the knowledge section", func(t *testing.T) {
		messages := buildMessages(entity.NewChatRequest("oi", nil), nil, promptCfg())
		assert.NotContains(t, messages[0].Content, "Base de conhecimento")
	})
}
