package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"purpose-finder/internal/assessment"
	"purpose-finder/internal/domain"
	"purpose-finder/internal/service"
)

// AssessmentHandler mantiene dependencias para los endpoints de evaluación.
type AssessmentHandler struct {
	logger      *zap.Logger
	purposeSvc  *service.PurposeService
	shareTokens *service.ShareTokenService
	limiter     service.SubmitRateLimiter
}

func NewAssessmentHandler(
	logger *zap.Logger,
	purposeSvc *service.PurposeService,
	shareTokens *service.ShareTokenService,
	limiter service.SubmitRateLimiter,
) *AssessmentHandler {
	return &AssessmentHandler{
		logger:      logger,
		purposeSvc:  purposeSvc,
		shareTokens: shareTokens,
		limiter:     limiter,
	}
}

// GetQuestions maneja GET /assessment/questions y expone el catálogo completo.
func (h *AssessmentHandler) GetQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"big_five":   assessment.BigFiveItems(),
		"motivation": assessment.MotivationItems(),
		"values":     assessment.ValuesCatalog(),
		"max_values": assessment.MaxValues,
		"rating_min": assessment.MinRating,
		"rating_max": assessment.MaxRating,
	})
}

// Submit maneja POST /assessment/submit: una pasada completa de evaluación.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	if h.limiter != nil && !h.limiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many submissions, try again later"})
		return
	}

	var req struct {
		Name       string         `json:"name"`
		Age        int            `json:"age" binding:"omitempty,gte=13,lte=120"`
		Ratings    map[string]int `json:"ratings"`
		Values     []string       `json:"values"`
		Reflection string         `json:"reflection"`
		Passcode   string         `json:"passcode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	for id, rating := range req.Ratings {
		if rating < assessment.MinRating || rating > assessment.MaxRating {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating out of range for " + id})
			return
		}
	}

	record, err := h.purposeSvc.Evaluate(c.Request.Context(), domain.AssessmentInput{
		Name:       req.Name,
		Age:        req.Age,
		Ratings:    req.Ratings,
		Values:     req.Values,
		Reflection: req.Reflection,
		Passcode:   req.Passcode,
	})
	if err != nil {
		h.logger.Error("evaluate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not evaluate assessment"})
		return
	}

	resp := gin.H{"result": record}
	if record.Source == domain.PurposeSourceFallback {
		resp["notice"] = "AI generation unavailable; showing rule-based suggestions."
	}
	c.JSON(http.StatusCreated, resp)
}

// GetResult maneja GET /assessment/result. Un registro protegido exige el
// mismo passcode que el export.
func (h *AssessmentHandler) GetResult(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	record, err := h.purposeSvc.GetRecord(c.Request.Context(), id, c.Query("passcode"))
	if err != nil {
		h.respondRecordError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": record})
}

// ExportResult maneja GET /assessment/export y devuelve el artefacto JSON
// descargable, validando el passcode si el registro está protegido.
func (h *AssessmentHandler) ExportResult(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	record, err := h.purposeSvc.ExportRecord(c.Request.Context(), id, c.Query("passcode"))
	if err != nil {
		h.respondRecordError(c, err)
		return
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		h.logger.Error("marshal export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not export result"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="purposefinder_results.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// ShareResult maneja POST /assessment/share y emite un token de lectura.
// Compartir un registro protegido exige su passcode: el token resultante
// es la autorización del lector.
func (h *AssessmentHandler) ShareResult(c *gin.Context) {
	var req struct {
		RecordID string `json:"record_id" binding:"required"`
		Passcode string `json:"passcode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if _, err := h.purposeSvc.GetRecord(c.Request.Context(), req.RecordID, req.Passcode); err != nil {
		h.respondRecordError(c, err)
		return
	}

	token, err := h.shareTokens.Issue(req.RecordID)
	if err != nil {
		h.logger.Warn("share token issue failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sharing not available"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"share_token": token})
}

// GetSharedResult maneja GET /assessment/shared con un token emitido antes.
func (h *AssessmentHandler) GetSharedResult(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	recordID, err := h.shareTokens.Parse(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "share token invalid or expired"})
		return
	}

	record, err := h.purposeSvc.GetSharedRecord(c.Request.Context(), recordID)
	if err != nil {
		h.respondRecordError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": record})
}

// GetSimilar maneja GET /assessment/similar: perfiles cercanos por vector de rasgos.
func (h *AssessmentHandler) GetSimilar(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	k := 5
	if raw := c.Query("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "k must be a positive integer"})
			return
		}
		k = parsed
	}

	profiles, err := h.purposeSvc.FindSimilar(c.Request.Context(), id, k)
	if err != nil {
		h.respondRecordError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

func (h *AssessmentHandler) respondRecordError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
	case errors.Is(err, service.ErrPasscodeRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "passcode required"})
	case errors.Is(err, service.ErrPasscodeInvalid):
		c.JSON(http.StatusForbidden, gin.H{"error": "passcode invalid"})
	case errors.Is(err, service.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "result storage not available"})
	default:
		h.logger.Error("result lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch result"})
	}
}
