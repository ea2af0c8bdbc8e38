package entity

// Confidence routing thresholds. Responses at or above the high threshold
// are safe to auto-accept; responses strictly below the review threshold
// must be routed to a human. The band in between passes silently.
const (
	HighConfidenceThreshold = 0.8
	ReviewThreshold         = 0.7
)

// AIResponse is the outcome envelope for one orchestration call.
// Construct only through NewSuccessResponse or NewFailureResponse.
type AIResponse struct {
	Success    bool           `json:"success"`
	Type       RequestType    `json:"type"`
	Content    any            `json:"content,omitempty"`
	Confidence float64        `json:"confidence"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// NewSuccessResponse builds the success variant of the envelope.
func NewSuccessResponse(reqType RequestType, content any, confidence float64, metadata map[string]any) *AIResponse {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &AIResponse{
		Success:    true,
		Type:       reqType,
		Content:    content,
		Confidence: confidence,
		Metadata:   metadata,
	}
}

// NewFailureResponse builds the failure variant: no content, zero confidence,
// non-empty error message.
func NewFailureResponse(reqType RequestType, errMsg string) *AIResponse {
	if errMsg == "" {
		errMsg = "unknown error"
	}

	return &AIResponse{
		Success:    false,
		Type:       reqType,
		Confidence: 0,
		Error:      errMsg,
	}
}

// IsHighConfidence reports whether the response is safe to auto-accept.
func (r *AIResponse) IsHighConfidence() bool {
	return r.Success && r.Confidence >= HighConfidenceThreshold
}

// RequiresReview reports whether the response must be routed to a human.
// Note the asymmetry with IsHighConfidence: confidence in [0.7, 0.8) is
// neither high-confidence nor flagged for review.
func (r *AIResponse) RequiresReview() bool {
	return !r.Success || r.Confidence < ReviewThreshold
}
