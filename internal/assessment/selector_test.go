package assessment

import (
	"reflect"
	"testing"
)

func neutralScores() map[string]float64 {
	scores := make(map[string]float64)
	for _, ti := range BigFiveItems() {
		scores[ti.Trait] = 3.0
	}
	return scores
}

func TestTopKSelectorLeadsWithHighestTrait(t *testing.T) {
	scores := neutralScores()
	scores["Extraversion"] = 5.0

	domains := TopKSelector{K: 2}.Recommend(scores)

	if len(domains) != 4 {
		t.Fatalf("expected 4 domains (2 traits x 2), got %d", len(domains))
	}
	if domains[0] != "Community-oriented roles (sales, teaching, public-facing)" {
		t.Fatalf("expected extraversion domain first, got %q", domains[0])
	}
	// Segundo lugar: empate en 3.0 se resuelve por orden declarado (Openness).
	if domains[2] != "Creative pursuits (writing, design, arts)" {
		t.Fatalf("expected openness domain third, got %q", domains[2])
	}
}

func TestTopKSelectorTieBreakUsesDeclaredOrder(t *testing.T) {
	domains := TopKSelector{K: 2}.Recommend(neutralScores())

	want := append(
		append([]string(nil), domainSuggestions["Openness"]...),
		domainSuggestions["Conscientiousness"]...,
	)
	if !reflect.DeepEqual(domains, want) {
		t.Fatalf("expected declared-order tie break, got %v", domains)
	}
}

func TestTopKSelectorIgnoresNonTopSwaps(t *testing.T) {
	scores := neutralScores()
	scores["Openness"] = 5.0
	scores["Conscientiousness"] = 4.5
	scores["Agreeableness"] = 2.0
	scores["Neuroticism"] = 1.0

	before := TopKSelector{K: 2}.Recommend(scores)

	// Intercambiar dos rasgos fuera del top-2 no cambia el resultado.
	scores["Agreeableness"], scores["Neuroticism"] = scores["Neuroticism"], scores["Agreeableness"]
	after := TopKSelector{K: 2}.Recommend(scores)

	if !reflect.DeepEqual(before, after) {
		t.Fatalf("non-top swap changed domains: %v vs %v", before, after)
	}
}

func TestTopKSelectorIsDeterministic(t *testing.T) {
	scores := neutralScores()
	scores["Agreeableness"] = 4.2

	first := TopKSelector{K: 2}.Recommend(scores)
	for i := 0; i < 10; i++ {
		if got := (TopKSelector{K: 2}).Recommend(scores); !reflect.DeepEqual(first, got) {
			t.Fatalf("run %d differs: %v vs %v", i, first, got)
		}
	}
}

func TestThresholdSelectorDefaultsToBalanceStability(t *testing.T) {
	domains := ThresholdSelector{Cutoff: 3.5}.Recommend(neutralScores())

	want := []string{"Balance", "Stability"}
	if !reflect.DeepEqual(domains, want) {
		t.Fatalf("expected default pair, got %v", domains)
	}
}

func TestThresholdSelectorPicksFirstTraitOverCutoff(t *testing.T) {
	scores := neutralScores()
	scores["Extraversion"] = 4.0

	domains := ThresholdSelector{Cutoff: 3.5}.Recommend(scores)
	want := []string{"Leadership", "Social impact"}
	if !reflect.DeepEqual(domains, want) {
		t.Fatalf("expected extraversion pair, got %v", domains)
	}
}

func TestThresholdSelectorUsesPriorityOverMagnitude(t *testing.T) {
	// Conscientiousness puntúa más alto, pero Openness va antes en prioridad.
	scores := neutralScores()
	scores["Openness"] = 4.0
	scores["Conscientiousness"] = 5.0

	domains := ThresholdSelector{Cutoff: 3.5}.Recommend(scores)
	want := []string{"Creativity", "Innovation"}
	if !reflect.DeepEqual(domains, want) {
		t.Fatalf("expected openness pair by priority, got %v", domains)
	}
}

func TestThresholdSelectorCutoffIsStrict(t *testing.T) {
	scores := neutralScores()
	scores["Extraversion"] = 3.5

	domains := ThresholdSelector{Cutoff: 3.5}.Recommend(scores)
	want := []string{"Balance", "Stability"}
	if !reflect.DeepEqual(domains, want) {
		t.Fatalf("expected strict cutoff to fall through to default, got %v", domains)
	}
}

func TestNewSelector(t *testing.T) {
	if _, err := NewSelector(PolicyTopK); err != nil {
		t.Fatalf("top_k: %v", err)
	}
	if _, err := NewSelector(PolicyThreshold); err != nil {
		t.Fatalf("threshold: %v", err)
	}
	if _, err := NewSelector(""); err != nil {
		t.Fatalf("empty policy should default: %v", err)
	}
	if _, err := NewSelector("random"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
