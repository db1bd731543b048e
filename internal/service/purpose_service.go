package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"purpose-finder/internal/assessment"
	"purpose-finder/internal/domain"
	"purpose-finder/internal/llm"
	"purpose-finder/internal/repository"
)

var (
	ErrStorageDisabled  = errors.New("result storage not configured")
	ErrPasscodeRequired = errors.New("passcode required")
	ErrPasscodeInvalid  = errors.New("passcode invalid")
)

// PurposeService orquesta una evaluación completa: puntaje, dominios,
// resumen, propósito (LLM o fallback) y persistencia del registro.
type PurposeService struct {
	llmClient llm.LLMClient
	selector  assessment.DomainSelector
	builder   CoachPromptBuilder
	results   repository.ResultRepository
	logger    *zap.Logger
}

func NewPurposeService(
	llmClient llm.LLMClient,
	selector assessment.DomainSelector,
	results repository.ResultRepository,
	logger *zap.Logger,
) *PurposeService {
	return &PurposeService{
		llmClient: llmClient,
		selector:  selector,
		builder:   CoachPromptBuilder{},
		results:   results,
		logger:    logger,
	}
}

// Evaluate ejecuta la pasada completa sobre un input inmutable.
// Un fallo del LLM nunca es fatal: degrada al fallback y queda registrado
// en el campo Source del resultado.
func (s *PurposeService) Evaluate(ctx context.Context, input domain.AssessmentInput) (domain.AssessmentRecord, error) {
	values := assessment.TruncateValues(assessment.NormalizeValues(input.Values))
	traits := assessment.ScoreLikert(input.Ratings, assessment.BigFiveItems())
	motivations := assessment.ScoreLikert(input.Ratings, assessment.MotivationItems())
	domains := s.selector.Recommend(traits)

	summary := assessment.BuildProfileSummary(input.Name, input.Age, traits, motivations, domains, values, input.Reflection)
	purpose, source := s.generatePurpose(ctx, summary, domains, values)

	record := domain.AssessmentRecord{
		ID:               uuid.NewString(),
		CreatedAt:        time.Now().UTC(),
		Name:             strings.TrimSpace(input.Name),
		Age:              input.Age,
		TraitScores:      traits,
		MotivationScores: motivations,
		Values:           values,
		Domains:          domains,
		Reflection:       strings.TrimSpace(input.Reflection),
		Purpose:          purpose,
		Source:           source,
	}

	if s.results != nil {
		passcodeHash, err := hashPasscode(input.Passcode)
		if err != nil {
			return domain.AssessmentRecord{}, fmt.Errorf("hash passcode: %w", err)
		}
		vec := pgvector.NewVector(assessment.TraitVector(traits, motivations))
		if err := s.results.Create(ctx, record, vec, passcodeHash); err != nil {
			return domain.AssessmentRecord{}, fmt.Errorf("store result: %w", err)
		}
	}

	return record, nil
}

// GetRecord devuelve un registro persistido por id, validando el passcode
// si el registro fue protegido al crearse. Todo acceso directo por id pasa
// por aquí: un registro protegido nunca se lee sin su passcode.
func (s *PurposeService) GetRecord(ctx context.Context, id, passcode string) (domain.AssessmentRecord, error) {
	if s.results == nil {
		return domain.AssessmentRecord{}, ErrStorageDisabled
	}
	stored, err := s.results.GetByID(ctx, id)
	if err != nil {
		return domain.AssessmentRecord{}, err
	}
	if err := verifyPasscode(stored.PasscodeHash, passcode); err != nil {
		return domain.AssessmentRecord{}, err
	}
	return stored.Record, nil
}

// ExportRecord devuelve el registro para descarga; mismas reglas de passcode.
func (s *PurposeService) ExportRecord(ctx context.Context, id, passcode string) (domain.AssessmentRecord, error) {
	return s.GetRecord(ctx, id, passcode)
}

// GetSharedRecord devuelve un registro ya autorizado por un share token.
// El token solo se emite tras validar el passcode, así que no se vuelve a pedir.
func (s *PurposeService) GetSharedRecord(ctx context.Context, id string) (domain.AssessmentRecord, error) {
	if s.results == nil {
		return domain.AssessmentRecord{}, ErrStorageDisabled
	}
	stored, err := s.results.GetByID(ctx, id)
	if err != nil {
		return domain.AssessmentRecord{}, err
	}
	return stored.Record, nil
}

// FindSimilar busca perfiles cercanos por distancia de vector de rasgos.
func (s *PurposeService) FindSimilar(ctx context.Context, id string, k int) ([]repository.SimilarProfile, error) {
	if s.results == nil {
		return nil, ErrStorageDisabled
	}
	if _, err := s.results.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.results.FindSimilar(ctx, id, k)
}

func (s *PurposeService) generatePurpose(ctx context.Context, summary string, domains, values []string) (string, string) {
	valuesText := assessment.ValuesSummary(values)

	if s.llmClient != nil {
		prompt := s.builder.BuildCoachPrompt(summary)
		text, err := s.llmClient.Generate(ctx, prompt)
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), domain.PurposeSourceLLM
		}
		if err != nil && s.logger != nil {
			s.logger.Warn("llm generation failed, using fallback", zap.Error(err))
		}
	}

	return FallbackPlan(domains, valuesText), domain.PurposeSourceFallback
}

func verifyPasscode(hash, passcode string) error {
	if hash == "" {
		return nil
	}
	if strings.TrimSpace(passcode) == "" {
		return ErrPasscodeRequired
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) != nil {
		return ErrPasscodeInvalid
	}
	return nil
}

func hashPasscode(passcode string) (string, error) {
	passcode = strings.TrimSpace(passcode)
	if passcode == "" {
		return "", nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
