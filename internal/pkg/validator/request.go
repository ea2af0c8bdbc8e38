package validator

import (
	"strings"

	"github.com/odontosys/ai-backend/internal/entity"
)

// Validator checks incoming HTTP payloads before they reach the use cases.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAIRequest checks the envelope of an orchestration call.
func (v *Validator) ValidateAIRequest(req *entity.AIRequest) error {
	if req == nil {
		return &entity.ValidationError{Field: "body", Reason: "request body is required"}
	}

	if !req.Type.IsValid() {
		return &entity.ValidationError{Field: "type", Reason: "unknown request type " + string(req.Type)}
	}

	if req.Type == entity.RequestTypeChat && strings.TrimSpace(req.UserMessage) == "" {
		return &entity.ValidationError{Field: "user_message", Reason: "chat requests require a user message"}
	}

	return nil
}

// ValidateAddKnowledge checks an ingestion payload.
func (v *Validator) ValidateAddKnowledge(input *entity.AddKnowledgeInput) error {
	if input == nil {
		return &entity.ValidationError{Field: "body", Reason: "request body is required"}
	}

	if strings.TrimSpace(input.Category) == "" {
		return &entity.ValidationError{Field: "category", Reason: "category is required"}
	}

	if strings.TrimSpace(input.Title) == "" {
		return &entity.ValidationError{Field: "title", Reason: "title is required"}
	}

	if strings.TrimSpace(input.Content) == "" {
		return &entity.ValidationError{Field: "content", Reason: "content is required"}
	}

	return nil
}

// ValidateUpdateKnowledge checks an update payload.
func (v *Validator) ValidateUpdateKnowledge(id, content string) error {
	if strings.TrimSpace(id) == "" {
		return &entity.ValidationError{Field: "id", Reason: "id is required"}
	}

	if strings.TrimSpace(content) == "" {
		return &entity.ValidationError{Field: "content", Reason: "content is required"}
	}

	return nil
}
