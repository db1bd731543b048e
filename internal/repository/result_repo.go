package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"purpose-finder/internal/domain"
)

// StoredResult es un registro persistido junto a su hash de passcode.
// El hash nunca viaja dentro del AssessmentRecord serializable.
type StoredResult struct {
	Record       domain.AssessmentRecord
	PasscodeHash string
}

// SimilarProfile es una vista reducida para la búsqueda de perfiles parecidos.
type SimilarProfile struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name,omitempty"`
	Domains   []string  `json:"domains"`
	Distance  float64   `json:"distance"`
}

type ResultRepository interface {
	Create(ctx context.Context, record domain.AssessmentRecord, traitVector pgvector.Vector, passcodeHash string) error
	GetByID(ctx context.Context, id string) (StoredResult, error)
	FindSimilar(ctx context.Context, id string, k int) ([]SimilarProfile, error)
}

type PgResultRepository struct {
	pool *pgxpool.Pool
}

func NewPgResultRepository(pool *pgxpool.Pool) *PgResultRepository {
	return &PgResultRepository{pool: pool}
}

func (r *PgResultRepository) Create(ctx context.Context, record domain.AssessmentRecord, traitVector pgvector.Vector, passcodeHash string) error {
	const query = `
		INSERT INTO assessment_results (
			id, created_at, name, age, trait_scores, motivation_scores, selected_values, domains, reflection, purpose, source, trait_vector, passcode_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	traitJSON, err := json.Marshal(record.TraitScores)
	if err != nil {
		return fmt.Errorf("marshal trait scores: %w", err)
	}
	motivationJSON, err := json.Marshal(record.MotivationScores)
	if err != nil {
		return fmt.Errorf("marshal motivation scores: %w", err)
	}
	valuesJSON, err := json.Marshal(record.Values)
	if err != nil {
		return fmt.Errorf("marshal values: %w", err)
	}
	domainsJSON, err := json.Marshal(record.Domains)
	if err != nil {
		return fmt.Errorf("marshal domains: %w", err)
	}

	var hash interface{}
	if passcodeHash != "" {
		hash = passcodeHash
	}

	_, err = r.pool.Exec(ctx, query,
		record.ID,
		record.CreatedAt,
		record.Name,
		record.Age,
		traitJSON,
		motivationJSON,
		valuesJSON,
		domainsJSON,
		record.Reflection,
		record.Purpose,
		record.Source,
		traitVector,
		hash,
	)
	return err
}

func (r *PgResultRepository) GetByID(ctx context.Context, id string) (StoredResult, error) {
	const query = `
		SELECT id, created_at, name, age, trait_scores, motivation_scores, selected_values, domains, reflection, purpose, source, passcode_hash
		FROM assessment_results
		WHERE id = $1
	`

	var (
		stored         StoredResult
		traitJSON      []byte
		motivationJSON []byte
		valuesJSON     []byte
		domainsJSON    []byte
		hash           sql.NullString
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&stored.Record.ID,
		&stored.Record.CreatedAt,
		&stored.Record.Name,
		&stored.Record.Age,
		&traitJSON,
		&motivationJSON,
		&valuesJSON,
		&domainsJSON,
		&stored.Record.Reflection,
		&stored.Record.Purpose,
		&stored.Record.Source,
		&hash,
	)
	if err != nil {
		return StoredResult{}, err
	}

	if err := json.Unmarshal(traitJSON, &stored.Record.TraitScores); err != nil {
		return StoredResult{}, fmt.Errorf("unmarshal trait scores: %w", err)
	}
	if err := json.Unmarshal(motivationJSON, &stored.Record.MotivationScores); err != nil {
		return StoredResult{}, fmt.Errorf("unmarshal motivation scores: %w", err)
	}
	if err := json.Unmarshal(valuesJSON, &stored.Record.Values); err != nil {
		return StoredResult{}, fmt.Errorf("unmarshal values: %w", err)
	}
	if err := json.Unmarshal(domainsJSON, &stored.Record.Domains); err != nil {
		return StoredResult{}, fmt.Errorf("unmarshal domains: %w", err)
	}
	if hash.Valid {
		stored.PasscodeHash = hash.String
	}

	return stored, nil
}

func (r *PgResultRepository) FindSimilar(ctx context.Context, id string, k int) ([]SimilarProfile, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT r.id, r.created_at, r.name, r.domains, r.trait_vector <=> q.trait_vector AS distance
		FROM assessment_results r,
			(SELECT trait_vector FROM assessment_results WHERE id = $1) q
		WHERE r.id <> $1
		ORDER BY r.trait_vector <=> q.trait_vector
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, id, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []SimilarProfile
	for rows.Next() {
		var (
			p           SimilarProfile
			domainsJSON []byte
		)
		if err := rows.Scan(&p.ID, &p.CreatedAt, &p.Name, &domainsJSON, &p.Distance); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(domainsJSON, &p.Domains); err != nil {
			return nil, fmt.Errorf("unmarshal domains: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}
