package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"purpose-finder/internal/assessment"
	"purpose-finder/internal/domain"
	"purpose-finder/internal/llm"
	"purpose-finder/internal/repository"
	"purpose-finder/internal/service"
)

type mockResultRepo struct {
	stored  map[string]repository.StoredResult
	similar []repository.SimilarProfile
}

func newMockResultRepo() *mockResultRepo {
	return &mockResultRepo{stored: make(map[string]repository.StoredResult)}
}

func (m *mockResultRepo) Create(_ context.Context, record domain.AssessmentRecord, _ pgvector.Vector, passcodeHash string) error {
	m.stored[record.ID] = repository.StoredResult{Record: record, PasscodeHash: passcodeHash}
	return nil
}

func (m *mockResultRepo) GetByID(_ context.Context, id string) (repository.StoredResult, error) {
	stored, ok := m.stored[id]
	if !ok {
		return repository.StoredResult{}, pgx.ErrNoRows
	}
	return stored, nil
}

func (m *mockResultRepo) FindSimilar(_ context.Context, _ string, _ int) ([]repository.SimilarProfile, error) {
	return m.similar, nil
}

type stubLimiter struct {
	allow bool
}

func (s *stubLimiter) Allow(string) bool { return s.allow }

func setupRouter(llmClient llm.LLMClient, repo repository.ResultRepository, limiter service.SubmitRateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	purposeSvc := service.NewPurposeService(llmClient, assessment.TopKSelector{K: 2}, repo, logger)
	shareTokens := service.NewShareTokenService("test-secret", time.Hour)
	assessmentH := NewAssessmentHandler(logger, purposeSvc, shareTokens, limiter)
	healthH := NewHealthHandler(logger, nil)
	return NewRouter(logger, assessmentH, healthH)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetQuestions(t *testing.T) {
	router := setupRouter(&llm.MockClient{Response: "ok"}, newMockResultRepo(), nil)

	w := doJSON(t, router, http.MethodGet, "/assessment/questions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		BigFive   []assessment.TraitItems `json:"big_five"`
		Values    []string                `json:"values"`
		MaxValues int                     `json:"max_values"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.BigFive) != 5 {
		t.Fatalf("expected 5 big five traits, got %d", len(resp.BigFive))
	}
	if len(resp.Values) != 10 || resp.MaxValues != assessment.MaxValues {
		t.Fatalf("unexpected values catalog: %d values, cap %d", len(resp.Values), resp.MaxValues)
	}
}

func TestSubmitHappyPath(t *testing.T) {
	router := setupRouter(&llm.MockClient{Response: "Purpose:\n- Teach and build."}, newMockResultRepo(), nil)

	w := doJSON(t, router, http.MethodPost, "/assessment/submit", gin.H{
		"name":    "Ana",
		"age":     29,
		"ratings": map[string]int{"outgoing": 5, "energy": 5},
		"values":  []string{"Adventure"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result domain.AssessmentRecord `json:"result"`
		Notice string                  `json:"notice"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Result.Source != domain.PurposeSourceLLM {
		t.Fatalf("expected llm source, got %s", resp.Result.Source)
	}
	if resp.Notice != "" {
		t.Fatalf("no notice expected on llm path, got %q", resp.Notice)
	}
	if resp.Result.TraitScores["Extraversion"] != 5.0 {
		t.Fatalf("expected Extraversion 5.0, got %v", resp.Result.TraitScores["Extraversion"])
	}
	if len(resp.Result.Domains) == 0 || !strings.Contains(resp.Result.Domains[0], "Community-oriented roles") {
		t.Fatalf("expected extraversion domains first, got %v", resp.Result.Domains)
	}
}

func TestSubmitFallbackNotice(t *testing.T) {
	router := setupRouter(llm.NewDisabledClient("llm api key not configured"), newMockResultRepo(), nil)

	w := doJSON(t, router, http.MethodPost, "/assessment/submit", gin.H{"ratings": map[string]int{}})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	var resp struct {
		Result domain.AssessmentRecord `json:"result"`
		Notice string                  `json:"notice"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Result.Source != domain.PurposeSourceFallback {
		t.Fatalf("expected fallback source, got %s", resp.Result.Source)
	}
	if resp.Notice == "" {
		t.Fatalf("expected non-fatal notice on fallback path")
	}
	if resp.Result.Purpose == "" {
		t.Fatalf("fallback purpose must not be empty")
	}
}

func TestSubmitRejectsOutOfRangeRating(t *testing.T) {
	router := setupRouter(&llm.MockClient{Response: "ok"}, newMockResultRepo(), nil)

	w := doJSON(t, router, http.MethodPost, "/assessment/submit", gin.H{
		"ratings": map[string]int{"outgoing": 9},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSubmitRateLimited(t *testing.T) {
	router := setupRouter(&llm.MockClient{Response: "ok"}, newMockResultRepo(), &stubLimiter{allow: false})

	w := doJSON(t, router, http.MethodPost, "/assessment/submit", gin.H{})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestGetResultNotFound(t *testing.T) {
	router := setupRouter(&llm.MockClient{Response: "ok"}, newMockResultRepo(), nil)

	w := doJSON(t, router, http.MethodGet, "/assessment/result?id=missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func submitOne(t *testing.T, router *gin.Engine, body gin.H) domain.AssessmentRecord {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/assessment/submit", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Result domain.AssessmentRecord `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return resp.Result
}

func TestExportResultPasscodeFlow(t *testing.T) {
	router := setupRouter(&llm.MockClient{Response: "ok"}, newMockResultRepo(), nil)
	record := submitOne(t, router, gin.H{"passcode": "1234"})

	w := doJSON(t, router, http.MethodGet, "/assessment/export?id="+record.ID, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without passcode, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/assessment/export?id="+record.ID+"&passcode=wrong", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with wrong passcode, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/assessment/export?id="+record.ID+"&passcode=1234", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "purposefinder_results.json") {
		t.Fatalf("expected attachment header, got %q", w.Header().Get("Content-Disposition"))
	}

	// El artefacto descargado debe round-trippear al mismo registro.
	var exported domain.AssessmentRecord
	if err := json.Unmarshal(w.Body.Bytes(), &exported); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if exported.ID != record.ID || exported.Purpose != record.Purpose {
		t.Fatalf("export differs from submitted record")
	}
}

func TestResultAndShareEnforcePasscode(t *testing.T) {
	router := setupRouter(&llm.MockClient{Response: "ok"}, newMockResultRepo(), nil)
	record := submitOne(t, router, gin.H{"passcode": "1234", "reflection": "late-night sketching"})

	// Un registro protegido no se lee por id sin su passcode.
	w := doJSON(t, router, http.MethodGet, "/assessment/result?id="+record.ID, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without passcode, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "late-night sketching") {
		t.Fatalf("protected record content leaked in 401 response")
	}

	w = doJSON(t, router, http.MethodGet, "/assessment/result?id="+record.ID+"&passcode=wrong", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with wrong passcode, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/assessment/result?id="+record.ID+"&passcode=1234", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with correct passcode, got %d", w.Code)
	}

	// Tampoco se emite un token de lectura sin el passcode.
	w = doJSON(t, router, http.MethodPost, "/assessment/share", gin.H{"record_id": record.ID})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 sharing without passcode, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/assessment/share", gin.H{"record_id": record.ID, "passcode": "1234"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 sharing with passcode, got %d: %s", w.Code, w.Body.String())
	}
	var shareResp struct {
		ShareToken string `json:"share_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &shareResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// El token emitido ya es la autorización: el lector no repite el passcode.
	w = doJSON(t, router, http.MethodGet, "/assessment/shared?token="+shareResp.ShareToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with share token, got %d", w.Code)
	}
}

func TestSubmitFiltersValuesOutsideCatalog(t *testing.T) {
	router := setupRouter(&llm.MockClient{Response: "ok"}, newMockResultRepo(), nil)

	record := submitOne(t, router, gin.H{
		"values": []string{"Creativity", "creativity", "Hacking", "Family"},
	})
	want := []string{"Creativity", "Family"}
	if len(record.Values) != len(want) {
		t.Fatalf("expected values %v, got %v", want, record.Values)
	}
	for i, v := range want {
		if record.Values[i] != v {
			t.Fatalf("expected values %v, got %v", want, record.Values)
		}
	}
}

func TestShareAndFetchSharedResult(t *testing.T) {
	router := setupRouter(&llm.MockClient{Response: "ok"}, newMockResultRepo(), nil)
	record := submitOne(t, router, gin.H{})

	w := doJSON(t, router, http.MethodPost, "/assessment/share", gin.H{"record_id": record.ID})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var shareResp struct {
		ShareToken string `json:"share_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &shareResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if shareResp.ShareToken == "" {
		t.Fatalf("expected share token")
	}

	w = doJSON(t, router, http.MethodGet, "/assessment/shared?token="+shareResp.ShareToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/assessment/shared?token=garbage", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", w.Code)
	}
}

func TestGetSimilar(t *testing.T) {
	repo := newMockResultRepo()
	repo.similar = []repository.SimilarProfile{{ID: "other", Distance: 0.1}}
	router := setupRouter(&llm.MockClient{Response: "ok"}, repo, nil)
	record := submitOne(t, router, gin.H{})

	w := doJSON(t, router, http.MethodGet, "/assessment/similar?id="+record.ID+"&k=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/assessment/similar?id="+record.ID+"&k=zero", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad k, got %d", w.Code)
	}
}

func TestHealthWithoutPool(t *testing.T) {
	router := setupRouter(&llm.MockClient{Response: "ok"}, newMockResultRepo(), nil)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
