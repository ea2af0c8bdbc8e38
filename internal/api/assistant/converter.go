package assistant

import "github.com/odontosys/ai-backend/internal/entity"

// AIRequestDTO mirrors the orchestration request envelope on the wire.
type AIRequestDTO struct {
	Type        string         `json:"type,omitempty"`
	Context     map[string]any `json:"context,omitempty"`
	UserMessage string         `json:"user_message,omitempty"`
	UserID      string         `json:"user_id,omitempty"`
	PatientID   string         `json:"patient_id,omitempty"`
	Options     map[string]any `json:"options,omitempty"`
}

// AIResponseDTO is the outcome envelope plus the derived routing flags the
// dashboard acts on.
type AIResponseDTO struct {
	Success          bool           `json:"success"`
	Type             string         `json:"type"`
	Content          any            `json:"content,omitempty"`
	Confidence       float64        `json:"confidence"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	Error            string         `json:"error,omitempty"`
	IsHighConfidence bool           `json:"is_high_confidence"`
	RequiresReview   bool           `json:"requires_review"`
}

func toEntityRequest(dto *AIRequestDTO) *entity.AIRequest {
	return &entity.AIRequest{
		Type:        entity.RequestType(dto.Type),
		Context:     dto.Context,
		UserMessage: dto.UserMessage,
		UserID:      dto.UserID,
		PatientID:   dto.PatientID,
		Options:     dto.Options,
	}
}

func toResponseDTO(resp *entity.AIResponse) *AIResponseDTO {
	return &AIResponseDTO{
		Success:          resp.Success,
		Type:             string(resp.Type),
		Content:          resp.Content,
		Confidence:       resp.Confidence,
		Metadata:         resp.Metadata,
		Error:            resp.Error,
		IsHighConfidence: resp.IsHighConfidence(),
		RequiresReview:   resp.RequiresReview(),
	}
}
