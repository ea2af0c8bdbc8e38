package rag

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/odontosys/ai-backend/internal/entity"
)

// clauseSeparator joins the natural-language clauses of a composed query.
const clauseSeparator = ". "

// Default queries guarantee every request type yields a retrievable,
// non-empty search string even when the context carries nothing usable.
var defaultQueries = map[entity.RequestType]string{
	entity.RequestTypeClinicalEvolution:   "evolução clínica odontológica",
	entity.RequestTypeDiagnosisSuggestion: "diagnóstico odontológico",
	entity.RequestTypeTreatmentPlan:       "plano de tratamento odontológico",
	entity.RequestTypeNoShowRisk:          "risco de falta em consulta odontológica",
	entity.RequestTypeFinancialInsight:    "análise financeira de clínica odontológica",
	entity.RequestTypeChat:                "atendimento odontológico",
	entity.RequestTypeMessageGeneration:   "mensagem para paciente de clínica odontológica",
}

const fallbackQuery = "odontologia geral"

// BuildQuery deterministically turns (request type, context) into the search
// string used both for cache-key derivation and as the text submitted for
// embedding. It is pure: identical inputs always produce identical output,
// and the result is never empty.
func BuildQuery(reqType entity.RequestType, context map[string]any) string {
	var clauses []string

	switch reqType {
	case entity.RequestTypeClinicalEvolution:
		clauses = clinicalEvolutionClauses(context)
	case entity.RequestTypeDiagnosisSuggestion:
		clauses = diagnosisClauses(context)
	case entity.RequestTypeTreatmentPlan:
		clauses = treatmentPlanClauses(context)
	case entity.RequestTypeChat:
		if msg, ok := context["user_message"].(string); ok && strings.TrimSpace(msg) != "" {
			return msg
		}
	default:
		if serialized := serializeContext(context); serialized != "" {
			return serialized
		}
	}

	if len(clauses) == 0 {
		if q, ok := defaultQueries[reqType]; ok {
			return q
		}
		return fallbackQuery
	}

	return strings.Join(clauses, clauseSeparator)
}

func clinicalEvolutionClauses(context map[string]any) []string {
	var clauses []string

	if names := collectNames(context["procedures"]); len(names) > 0 {
		clauses = append(clauses, "Procedimentos realizados: "+strings.Join(names, ", "))
	}

	if appointment, ok := context["appointment"].(map[string]any); ok {
		if apptType, ok := appointment["type"].(string); ok && apptType != "" {
			clauses = append(clauses, "Tipo de consulta: "+apptType)
		}
	}

	if patient, ok := context["patient"].(map[string]any); ok && len(patient) > 0 {
		clauses = append(clauses, "Paciente com perfil clínico registrado")
	}

	return clauses
}

func diagnosisClauses(context map[string]any) []string {
	var clauses []string

	if symptoms := collectStrings(context["symptoms"]); len(symptoms) > 0 {
		clauses = append(clauses, "Sintomas: "+strings.Join(symptoms, ", "))
	}

	if exam, ok := context["clinical_exam"].(map[string]any); ok && len(exam) > 0 {
		clauses = append(clauses, "Exame clínico: "+serializeContext(exam))
	}

	return clauses
}

func treatmentPlanClauses(context map[string]any) []string {
	var clauses []string

	if diagnosis := collectStrings(context["diagnosis"]); len(diagnosis) > 0 {
		clauses = append(clauses, "Diagnóstico: "+strings.Join(diagnosis, ", "))
	}

	if teeth := teethNeedingAttention(context["odontogram"]); len(teeth) > 0 {
		clauses = append(clauses, "Dentes com necessidade de tratamento: "+strings.Join(teeth, ", "))
	}

	return clauses
}

// teethNeedingAttention extracts tooth numbers from an odontogram map whose
// entries are keyed by tooth number and carry a non-healthy condition.
func teethNeedingAttention(v any) []string {
	odontogram, ok := v.(map[string]any)
	if !ok || len(odontogram) == 0 {
		return nil
	}

	var teeth []string
	for tooth, state := range odontogram {
		switch s := state.(type) {
		case string:
			if s != "" && s != "healthy" && s != "hígido" {
				teeth = append(teeth, tooth)
			}
		case map[string]any:
			if needs, ok := s["needs_treatment"].(bool); ok && needs {
				teeth = append(teeth, tooth)
			}
		}
	}

	// Map iteration order is random; sort for determinism.
	sort.Strings(teeth)
	return teeth
}

// collectNames extracts the "name" field from a slice of mappings.
func collectNames(v any) []string {
	var names []string

	appendName := func(m map[string]any) {
		if name, ok := m["name"].(string); ok && name != "" {
			names = append(names, name)
		}
	}

	switch items := v.(type) {
	case []map[string]any:
		for _, item := range items {
			appendName(item)
		}
	case []any:
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				appendName(m)
			}
		}
	}

	return names
}

// collectStrings normalizes a string slice that may arrive as []string or,
// after JSON round-tripping, as []any.
func collectStrings(v any) []string {
	switch items := v.(type) {
	case []string:
		out := make([]string, 0, len(items))
		for _, s := range items {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		var out []string
		for _, item := range items {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// serializeContext renders a context mapping as deterministic JSON
// (encoding/json sorts map keys). Empty mappings serialize to "".
func serializeContext(context map[string]any) string {
	if len(context) == 0 {
		return ""
	}

	data, err := json.Marshal(context)
	if err != nil {
		// Contexts are built from JSON-decoded values; marshal failures only
		// happen with exotic caller-supplied types.
		return fmt.Sprintf("%v", context)
	}

	return string(data)
}
