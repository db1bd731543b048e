package domain

import "time"

const (
	PurposeSourceLLM      = "llm"
	PurposeSourceFallback = "fallback"
)

// AssessmentInput agrupa todo lo que el usuario respondió en una pasada.
// Es el único estado de la evaluación: se pasa explícito, nunca ambiente.
type AssessmentInput struct {
	Name       string
	Age        int
	Ratings    map[string]int
	Values     []string
	Reflection string
	Passcode   string
}

// AssessmentRecord es el artefacto descargable de una evaluación.
// Serializa a JSON plano y debe sobrevivir un round-trip campo a campo.
type AssessmentRecord struct {
	ID               string             `json:"id"`
	CreatedAt        time.Time          `json:"created_at"`
	Name             string             `json:"name,omitempty"`
	Age              int                `json:"age,omitempty"`
	TraitScores      map[string]float64 `json:"trait_scores"`
	MotivationScores map[string]float64 `json:"motivation_scores"`
	Values           []string           `json:"values"`
	Domains          []string           `json:"domains"`
	Reflection       string             `json:"reflection,omitempty"`
	Purpose          string             `json:"purpose"`
	Source           string             `json:"source"`
}
