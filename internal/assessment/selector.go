package assessment

import (
	"fmt"
	"sort"
)

const (
	PolicyTopK      = "top_k"
	PolicyThreshold = "threshold"
)

// DomainSelector deriva la lista ordenada de dominios sugeridos.
// Debe ser determinista: mismos puntajes, misma lista, siempre.
type DomainSelector interface {
	Recommend(scores map[string]float64) []string
}

// NewSelector construye el selector según la política configurada.
func NewSelector(policy string) (DomainSelector, error) {
	switch policy {
	case PolicyTopK, "":
		return TopKSelector{K: 2}, nil
	case PolicyThreshold:
		return ThresholdSelector{Cutoff: 3.5}, nil
	default:
		return nil, fmt.Errorf("unknown recommend policy %q", policy)
	}
}

// TopKSelector toma los K rasgos con mayor puntaje y concatena sus dominios.
// Empates se resuelven por el orden declarado del catálogo (sort estable).
// Si dos rasgos top comparten dominios, los duplicados se preservan.
type TopKSelector struct {
	K int
}

func (s TopKSelector) Recommend(scores map[string]float64) []string {
	k := s.K
	if k <= 0 {
		k = 2
	}

	traits := make([]string, 0, len(BigFiveItems()))
	for _, ti := range BigFiveItems() {
		traits = append(traits, ti.Trait)
	}
	sort.SliceStable(traits, func(i, j int) bool {
		return scores[traits[i]] > scores[traits[j]]
	})

	if k > len(traits) {
		k = len(traits)
	}
	var domains []string
	for _, trait := range traits[:k] {
		domains = append(domains, domainSuggestions[trait]...)
	}
	return domains
}

// ThresholdSelector evalúa los rasgos en orden de prioridad fijo y devuelve
// el par de dominios del primero que supere estrictamente el corte.
// Nunca mezcla rasgos: o gana uno solo, o gana el par default.
type ThresholdSelector struct {
	Cutoff float64
}

func (s ThresholdSelector) Recommend(scores map[string]float64) []string {
	cutoff := s.Cutoff
	if cutoff == 0 {
		cutoff = 3.5
	}
	for _, trait := range thresholdPriority {
		if scores[trait] > cutoff {
			return append([]string(nil), thresholdDomains[trait]...)
		}
	}
	return append([]string(nil), thresholdDefault...)
}
