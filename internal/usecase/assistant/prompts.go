package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/odontosys/ai-backend/internal/config"
	"github.com/odontosys/ai-backend/internal/entity"
)

// Per-type instructions, in the clinic's working language.
var typeInstructions = map[entity.RequestType]string{
	entity.RequestTypeClinicalEvolution:   "Redija uma nota de evolução clínica odontológica objetiva e completa a partir dos dados da consulta.",
	entity.RequestTypeDiagnosisSuggestion: "Sugira hipóteses diagnósticas odontológicas a partir dos sintomas e do exame clínico, da mais à menos provável.",
	entity.RequestTypeTreatmentPlan:       "Proponha um plano de tratamento odontológico em etapas para o diagnóstico apresentado.",
	entity.RequestTypeNoShowRisk:          "Avalie o risco de falta do paciente à consulta agendada com base no histórico de comparecimento.",
	entity.RequestTypeFinancialInsight:    "Analise o resumo financeiro do período e destaque tendências e pontos de atenção.",
	entity.RequestTypeChat:                "Responda à dúvida do usuário de forma clara e clinicamente fundamentada.",
	entity.RequestTypeMessageGeneration:   "Escreva uma mensagem curta e cordial para o paciente conforme o tipo solicitado.",
}

// buildMessages assembles the conversation sent to the completion provider:
// a system message carrying tone, instruction, retrieved knowledge and the
// disclaimer, followed by the user turn(s).
func buildMessages(req *entity.AIRequest, knowledge []entity.KnowledgeResult, cfg config.PromptConfig) []entity.CompletionMessage {
	var system strings.Builder

	fmt.Fprintf(&system, "Você é um assistente de uma clínica odontológica. Idioma: %s. Tom: %s.\n", cfg.Locale, cfg.Tone)
	system.WriteString(typeInstructions[req.Type])
	system.WriteString("\nResponda em JSON com os campos \"text\" e \"confidence\" (0 a 1).")

	if context := knowledgeContext(knowledge, cfg.MaxContextLength); context != "" {
		system.WriteString("\n\nBase de conhecimento relevante:\n")
		system.WriteString(context)
	}

	if cfg.Disclaimer != "" {
		system.WriteString("\n\n")
		system.WriteString(cfg.Disclaimer)
	}

	messages := []entity.CompletionMessage{
		{Role: entity.RoleSystem, Content: system.String()},
	}

	if req.Type == entity.RequestTypeChat {
		messages = append(messages, conversationMessages(req.Context)...)
		messages = append(messages, entity.CompletionMessage{
			Role:    entity.RoleUser,
			Content: req.UserMessage,
		})
		return messages
	}

	messages = append(messages, entity.CompletionMessage{
		Role:    entity.RoleUser,
		Content: serializeRequestContext(req),
	})

	return messages
}

// knowledgeContext renders retrieved snippets, truncated to maxLength runes
// so the prompt never outgrows the provider's context window budget.
func knowledgeContext(knowledge []entity.KnowledgeResult, maxLength int) string {
	if len(knowledge) == 0 {
		return ""
	}

	var b strings.Builder
	for i, k := range knowledge {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s] %s\n%s", k.Category, k.Title, k.Content)
	}

	context := b.String()
	if maxLength > 0 {
		runes := []rune(context)
		if len(runes) > maxLength {
			context = string(runes[:maxLength])
		}
	}

	return context
}

// conversationMessages replays prior chat turns from the request context.
func conversationMessages(reqContext map[string]any) []entity.CompletionMessage {
	turns, ok := reqContext["conversation"].([]map[string]any)
	if !ok {
		if anyTurns, ok := reqContext["conversation"].([]any); ok {
			for _, t := range anyTurns {
				if m, ok := t.(map[string]any); ok {
					turns = append(turns, m)
				}
			}
		}
	}

	var messages []entity.CompletionMessage
	for _, turn := range turns {
		role, _ := turn["role"].(string)
		content, _ := turn["content"].(string)
		if content == "" {
			continue
		}

		completionRole := entity.RoleUser
		if role == string(entity.RoleAssistant) {
			completionRole = entity.RoleAssistant
		}

		messages = append(messages, entity.CompletionMessage{
			Role:    completionRole,
			Content: content,
		})
	}

	return messages
}

func serializeRequestContext(req *entity.AIRequest) string {
	if len(req.Context) == 0 {
		if req.UserMessage != "" {
			return req.UserMessage
		}
		return "{}"
	}

	data, err := json.Marshal(req.Context)
	if err != nil {
		return fmt.Sprintf("%v", req.Context)
	}

	return string(data)
}
