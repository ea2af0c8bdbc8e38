package entity

// RequestType identifies which orchestration operation an AIRequest targets.
type RequestType string

const (
	RequestTypeClinicalEvolution   RequestType = "clinical_evolution"
	RequestTypeDiagnosisSuggestion RequestType = "diagnosis_suggestion"
	RequestTypeTreatmentPlan       RequestType = "treatment_plan"
	RequestTypeNoShowRisk          RequestType = "no_show_risk"
	RequestTypeFinancialInsight    RequestType = "financial_insight"
	RequestTypeChat                RequestType = "chat"
	RequestTypeMessageGeneration   RequestType = "message_generation"
)

// knownRequestTypes is the closed set of types the orchestration layer dispatches on.
var knownRequestTypes = map[RequestType]struct{}{
	RequestTypeClinicalEvolution:   {},
	RequestTypeDiagnosisSuggestion: {},
	RequestTypeTreatmentPlan:       {},
	RequestTypeNoShowRisk:          {},
	RequestTypeFinancialInsight:    {},
	RequestTypeChat:                {},
	RequestTypeMessageGeneration:   {},
}

// IsValid reports whether t is one of the known request types.
func (t RequestType) IsValid() bool {
	_, ok := knownRequestTypes[t]
	return ok
}

// AIRequest is the tagged envelope describing one orchestration call.
// The shape of Context is a pure function of Type; callers build requests
// through the per-type constructors below and treat them as immutable.
type AIRequest struct {
	Type        RequestType    `json:"type"`
	Context     map[string]any `json:"context"`
	UserMessage string         `json:"user_message,omitempty"`
	UserID      string         `json:"user_id,omitempty"`
	PatientID   string         `json:"patient_id,omitempty"`
	Options     map[string]any `json:"options,omitempty"`
}

// NewClinicalEvolutionRequest assembles the context for an evolution note:
// the patient profile, the appointment being documented and the procedures
// performed during it.
func NewClinicalEvolutionRequest(patient, appointment map[string]any, procedures []map[string]any) *AIRequest {
	return &AIRequest{
		Type: RequestTypeClinicalEvolution,
		Context: map[string]any{
			"patient":     patient,
			"appointment": appointment,
			"procedures":  procedures,
		},
	}
}

// NewDiagnosisRequest assembles the context for a diagnosis suggestion from
// reported symptoms, the clinical exam findings and the patient history.
func NewDiagnosisRequest(symptoms []string, clinicalExam map[string]any, history map[string]any) *AIRequest {
	return &AIRequest{
		Type: RequestTypeDiagnosisSuggestion,
		Context: map[string]any{
			"symptoms":      symptoms,
			"clinical_exam": clinicalExam,
			"history":       history,
		},
	}
}

// NewTreatmentPlanRequest assembles the context for a treatment plan from the
// established diagnosis and the current odontogram.
func NewTreatmentPlanRequest(diagnosis []string, odontogram map[string]any, patient map[string]any) *AIRequest {
	return &AIRequest{
		Type: RequestTypeTreatmentPlan,
		Context: map[string]any{
			"diagnosis":  diagnosis,
			"odontogram": odontogram,
			"patient":    patient,
		},
	}
}

// NewNoShowRiskRequest assembles the context for a no-show risk analysis from
// the upcoming appointment and the patient's attendance history.
func NewNoShowRiskRequest(appointment map[string]any, attendanceHistory []map[string]any) *AIRequest {
	return &AIRequest{
		Type: RequestTypeNoShowRisk,
		Context: map[string]any{
			"appointment":        appointment,
			"attendance_history": attendanceHistory,
		},
	}
}

// NewFinancialInsightRequest assembles the context for financial analysis
// over a period summary (revenue, receivables, procedure mix).
func NewFinancialInsightRequest(period string, summary map[string]any) *AIRequest {
	return &AIRequest{
		Type: RequestTypeFinancialInsight,
		Context: map[string]any{
			"period":  period,
			"summary": summary,
		},
	}
}

// NewChatRequest wraps a free-form user message, optionally with prior
// conversation turns for continuity.
func NewChatRequest(userMessage string, conversation []map[string]any) *AIRequest {
	return &AIRequest{
		Type:        RequestTypeChat,
		UserMessage: userMessage,
		Context: map[string]any{
			"user_message": userMessage,
			"conversation": conversation,
		},
	}
}

// NewMessageRequest assembles the context for generating a patient-facing
// message (reminder, follow-up, recall) of the given kind.
func NewMessageRequest(kind string, patient map[string]any, appointment map[string]any) *AIRequest {
	return &AIRequest{
		Type: RequestTypeMessageGeneration,
		Context: map[string]any{
			"message_kind": kind,
			"patient":      patient,
			"appointment":  appointment,
		},
	}
}
