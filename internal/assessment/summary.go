package assessment

import (
	"fmt"
	"strings"
)

// ValuesSummary arma el texto del checklist; vacío produce un placeholder
// explícito, nunca un string vacío.
func ValuesSummary(values []string) string {
	if len(values) == 0 {
		return "No strong values selected."
	}
	return strings.Join(values, ", ")
}

// BuildProfileSummary renderiza el bloque de perfil en orden fijo.
// Es solo formato: nunca se vuelve a parsear.
func BuildProfileSummary(
	name string,
	age int,
	traits, motivations map[string]float64,
	domains, values []string,
	reflection string,
) string {
	if strings.TrimSpace(name) == "" {
		name = "Anonymous"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name: %s\n", name))
	sb.WriteString(fmt.Sprintf("Age: %d\n", age))

	sb.WriteString("\nBig Five scores (1-5):\n")
	for _, ti := range BigFiveItems() {
		sb.WriteString(fmt.Sprintf("- %s: %.2f\n", ti.Trait, traits[ti.Trait]))
	}

	sb.WriteString("\nSelf-determination (1-5):\n")
	for _, ti := range MotivationItems() {
		sb.WriteString(fmt.Sprintf("- %s: %.2f\n", ti.Trait, motivations[ti.Trait]))
	}

	domainsText := "General exploration"
	if len(domains) > 0 {
		domainsText = strings.Join(domains, ", ")
	}
	sb.WriteString("\nTop suggested domains: " + domainsText + "\n")
	sb.WriteString("\nValues: " + ValuesSummary(values) + "\n")

	if strings.TrimSpace(reflection) == "" {
		reflection = "Not provided"
	}
	sb.WriteString("\nActivities I love: " + reflection + "\n")

	return sb.String()
}
