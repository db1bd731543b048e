package assessment

// ScoreLikert promedia las respuestas Likert de cada rasgo.
// Una pregunta sin respuesta cuenta como neutral (3): no se excluye del promedio.
// La función es total; con el mapa vacío todos los rasgos quedan en 3.0 exacto.
func ScoreLikert(ratings map[string]int, items []TraitItems) map[string]float64 {
	scores := make(map[string]float64, len(items))
	for _, ti := range items {
		sum := 0
		for _, q := range ti.Questions {
			sum += clampRating(ratings, q.ID)
		}
		scores[ti.Trait] = float64(sum) / float64(len(ti.Questions))
	}
	return scores
}

func clampRating(ratings map[string]int, questionID string) int {
	v, ok := ratings[questionID]
	if !ok {
		return NeutralRating
	}
	if v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}

// TraitVector aplana los puntajes en el orden declarado del catálogo.
// Se usa como embedding de perfil para búsqueda de similares.
func TraitVector(traits, motivations map[string]float64) []float32 {
	vec := make([]float32, 0, len(BigFiveItems())+len(MotivationItems()))
	for _, ti := range BigFiveItems() {
		vec = append(vec, float32(traits[ti.Trait]))
	}
	for _, ti := range MotivationItems() {
		vec = append(vec, float32(motivations[ti.Trait]))
	}
	return vec
}
