package assessment

import "strings"

const (
	MinRating     = 1
	MaxRating     = 5
	NeutralRating = 3

	// MaxValues limita el checklist de valores; el exceso se trunca en silencio.
	MaxValues = 4
)

// Question es un ítem Likert del cuestionario.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// TraitItems vincula un rasgo con sus preguntas asignadas.
// El orden declarado de los rasgos es también el desempate del selector top-k.
type TraitItems struct {
	Trait     string     `json:"trait"`
	Questions []Question `json:"questions"`
}

// BigFiveItems devuelve el cuestionario OCEAN reducido (2 ítems por rasgo).
func BigFiveItems() []TraitItems {
	return []TraitItems{
		{Trait: "Openness", Questions: []Question{
			{ID: "imagination", Text: "I enjoy exploring new ideas and experiences."},
			{ID: "curiosity", Text: "I often wonder about how things work or why people behave as they do."},
		}},
		{Trait: "Conscientiousness", Questions: []Question{
			{ID: "organized", Text: "I like to keep things in order and plan ahead."},
			{ID: "responsibility", Text: "I take my commitments seriously."},
		}},
		{Trait: "Extraversion", Questions: []Question{
			{ID: "outgoing", Text: "I feel energized by being around people."},
			{ID: "energy", Text: "I tend to be enthusiastic and talkative."},
		}},
		{Trait: "Agreeableness", Questions: []Question{
			{ID: "helpful", Text: "I go out of my way to help others."},
			{ID: "trust", Text: "I usually see the best in people."},
		}},
		{Trait: "Neuroticism", Questions: []Question{
			{ID: "stress", Text: "I get upset easily under pressure."},
			{ID: "worry", Text: "I spend a lot of time worrying about things."},
		}},
	}
}

// MotivationItems devuelve los ítems de autodeterminación (1 ítem por rasgo).
func MotivationItems() []TraitItems {
	return []TraitItems{
		{Trait: "Autonomy", Questions: []Question{
			{ID: "autonomy", Text: "I have the freedom to make choices about how I spend my time."},
		}},
		{Trait: "Competence", Questions: []Question{
			{ID: "competence", Text: "I feel capable of achieving goals I set for myself."},
		}},
		{Trait: "Relatedness", Questions: []Question{
			{ID: "relatedness", Text: "I feel connected to people who care about me."},
		}},
	}
}

// ValuesCatalog es el catálogo fijo del checklist de valores.
func ValuesCatalog() []string {
	return []string{
		"Creativity",
		"Security",
		"Helping others",
		"Achievement",
		"Freedom",
		"Family",
		"Adventure",
		"Learning",
		"Wealth",
		"Stability",
	}
}

// domainSuggestions mapea cada rasgo a sus dominios sugeridos (política top-k).
var domainSuggestions = map[string][]string{
	"Openness":          {"Creative pursuits (writing, design, arts)", "Research, learning, or travel"},
	"Conscientiousness": {"Project-based careers (engineering, operations, product)", "Entrepreneurship that requires discipline"},
	"Extraversion":      {"Community-oriented roles (sales, teaching, public-facing)", "Events, hospitality, or advocacy"},
	"Agreeableness":     {"Helping professions (counseling, social work, healthcare)", "Team-based roles and volunteering"},
	"Neuroticism":       {"Care-oriented roles with predictable structure", "Focus on wellbeing, therapy, or coaching"},
}

// thresholdPriority es el orden fijo de evaluación de la política threshold.
// Neuroticism nunca se evalúa: si nada supera el corte, gana el par default.
var thresholdPriority = []string{"Extraversion", "Openness", "Conscientiousness", "Agreeableness"}

var thresholdDomains = map[string][]string{
	"Extraversion":      {"Leadership", "Social impact"},
	"Openness":          {"Creativity", "Innovation"},
	"Conscientiousness": {"Achievement", "Structure"},
	"Agreeableness":     {"Helping", "Community"},
}

var thresholdDefault = []string{"Balance", "Stability"}

// NormalizeValues conserva solo entradas del catálogo, en su forma canónica y
// sin duplicados, preservando el orden de llegada. El resto se descarta.
func NormalizeValues(values []string) []string {
	catalog := ValuesCatalog()
	seen := make(map[string]bool, len(values))
	var out []string
	for _, raw := range values {
		raw = strings.TrimSpace(raw)
		for _, v := range catalog {
			if strings.EqualFold(v, raw) && !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// TruncateValues aplica el tope del checklist preservando el orden de entrada.
func TruncateValues(values []string) []string {
	if len(values) <= MaxValues {
		return values
	}
	return values[:MaxValues]
}
