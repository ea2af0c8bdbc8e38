package assistant

import (
	"encoding/json"
	"strings"

	"github.com/odontosys/ai-backend/internal/entity"
)

// neutralConfidence is used when neither the provider nor retrieval yields a
// usable score.
const neutralConfidence = 0.5

// parseCompletion extracts the payload and confidence from a provider
// answer. Providers are asked for a JSON object with "text" and
// "confidence"; when the answer is not parseable the raw text is kept and
// confidence falls back to the mean similarity of the retrieved knowledge.
func parseCompletion(raw string, knowledge []entity.KnowledgeResult) (any, float64) {
	trimmed := strings.TrimSpace(raw)

	var payload map[string]any
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil || len(payload) == 0 {
		return trimmed, retrievalConfidence(knowledge)
	}

	confidence, ok := payload["confidence"].(float64)
	if !ok {
		confidence = retrievalConfidence(knowledge)
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	if text, ok := payload["text"]; ok && len(payload) <= 2 {
		// Plain {text, confidence} answers unwrap to the text itself.
		return text, confidence
	}

	delete(payload, "confidence")
	return payload, confidence
}

// retrievalConfidence derives a fallback score from retrieval quality.
func retrievalConfidence(knowledge []entity.KnowledgeResult) float64 {
	if len(knowledge) == 0 {
		return neutralConfidence
	}

	var sum float64
	for _, k := range knowledge {
		sum += k.Similarity
	}

	mean := sum / float64(len(knowledge))
	if mean > 1 {
		mean = 1
	}
	if mean < 0 {
		mean = 0
	}
	return mean
}
