package service

import "strings"

// CoachPromptBuilder arma el prompt del coach a partir del resumen de perfil.
type CoachPromptBuilder struct{}

// BuildCoachPrompt devuelve el prompt completo que se envía al LLM generador.
func (CoachPromptBuilder) BuildCoachPrompt(profileSummary string) string {
	var sb strings.Builder
	sb.WriteString("You are a compassionate career & life coach. Given the user's psychological profile, ")
	sb.WriteString("provide a short, inspiring life-purpose statement (1-2 sentences), followed by 3 practical starter goals (each 1 sentence), ")
	sb.WriteString("and then suggest a 7-day micro-plan to test one of the starter goals. Be concise and kind.\n\n")
	sb.WriteString("User profile:\n")
	sb.WriteString(profileSummary)
	sb.WriteString("\n\nOutput format:\n")
	sb.WriteString("Purpose:\n- <one-line>\n")
	sb.WriteString("Starter Goals:\n1. ...\n2. ...\n3. ...\n")
	sb.WriteString("Micro-plan (7 days):\nDay 1: ...\n...\nDay 7: ...\n")
	return sb.String()
}
