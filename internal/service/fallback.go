package service

import (
	"fmt"
	"strings"
)

// microPlanDays es el micro-plan estático de 7 días del camino fallback.
var microPlanDays = []string{
	"Day 1: Research one local class or online tutorial (30 mins).",
	"Day 2: Schedule first 1-hour session this week.",
	"Day 3: Try a 45-minute session; reflect for 10 minutes.",
	"Day 4: Share your progress with a friend or journal about it.",
	"Day 5: Try another short session; note what you enjoyed.",
	"Day 6: Look for small ways to incorporate this into your week.",
	"Day 7: Review and choose a next small commitment (e.g., weekly hour).",
}

// FallbackPlan construye el propósito y micro-plan cuando el LLM no responde.
// Es el único camino obligatorio: puro, determinista y nunca vacío.
func FallbackPlan(domains []string, valuesText string) string {
	var sb strings.Builder

	if len(domains) > 0 {
		sb.WriteString(fmt.Sprintf("Focus on %s while honoring your values of %s.\n", strings.ToLower(domains[0]), valuesText))
	} else {
		sb.WriteString(fmt.Sprintf("Explore activities that combine your values (%s) with your strengths.\n", valuesText))
	}

	sb.WriteString("\nStarter Goals:\n")
	if len(domains) == 0 {
		sb.WriteString("1. Try a 2-week hobby challenge: 3 sessions each week.\n")
	}
	for i, dom := range domains {
		if i == 3 {
			break
		}
		sb.WriteString(fmt.Sprintf("%d. Try a small project or class related to %s for 4 weeks.\n", i+1, dom))
	}

	sb.WriteString("\n7-day micro-plan:\n")
	for _, day := range microPlanDays {
		sb.WriteString(day + "\n")
	}

	return sb.String()
}
