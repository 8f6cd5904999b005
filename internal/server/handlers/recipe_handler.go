package handlers

import (
	"context"
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/buffercalc/internal/catalog"
	"github.com/mamadbah2/buffercalc/internal/domain/models"
	"github.com/mamadbah2/buffercalc/internal/export"
	"github.com/mamadbah2/buffercalc/internal/i18n"
	"github.com/mamadbah2/buffercalc/internal/service/recipe"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// DefaultExportTarget is used when an export request names no target.
const DefaultExportTarget = "xlsx"

// RecipeService is what the HTTP layer needs from the recipe service.
type RecipeService interface {
	Catalog() *catalog.Catalog
	Calculate(ctx context.Context, req recipe.Request) (*recipe.Outcome, error)
	Export(ctx context.Context, req recipe.Request, target string) (*export.Artifact, *recipe.Outcome, error)
}

// RecipeHandler serves the calculation API.
type RecipeHandler struct {
	svc         RecipeService
	defaultLang i18n.Lang
	logger      *zap.Logger
}

// NewRecipeHandler constructs the HTTP handler adapter.
func NewRecipeHandler(svc RecipeService, defaultLang i18n.Lang, logger *zap.Logger) *RecipeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultLang == "" {
		defaultLang = i18n.English
	}
	return &RecipeHandler{svc: svc, defaultLang: defaultLang, logger: logger}
}

// Catalog lists the stock solutions and solids in use.
func (h *RecipeHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog().Document())
}

// Calculate computes a worksheet for a recipe and a total volume.
func (h *RecipeHandler) Calculate(c *gin.Context) {
	var body models.CalculateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Warn("invalid calculate payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	lang := h.language(c, body.Lang)
	outcome, err := h.svc.Calculate(c.Request.Context(), toRequest(body, lang))
	if err != nil {
		h.fail(c, err, lang)
		return
	}

	c.JSON(http.StatusOK, models.CalculateResponse{
		RequestID:       requestID(c),
		TotalVolumeML:   outcome.Result.TotalVolumeML,
		TotalNonWaterML: outcome.Result.TotalNonWaterML,
		Components:      outcome.Result.Components,
		Rows:            outcome.Rows,
	})
}

// Export calculates and returns a workbook, or the URL of the written sheet.
func (h *RecipeHandler) Export(c *gin.Context) {
	var body models.CalculateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Warn("invalid export payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	target := body.Target
	if target == "" {
		target = DefaultExportTarget
	}

	lang := h.language(c, body.Lang)
	art, _, err := h.svc.Export(c.Request.Context(), toRequest(body, lang), target)
	if err != nil {
		h.fail(c, err, lang)
		return
	}

	if art.URL != "" {
		c.JSON(http.StatusOK, gin.H{"request_id": requestID(c), "url": art.URL})
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": art.Filename}))
	c.Data(http.StatusOK, art.ContentType, art.Data)
}

func (h *RecipeHandler) fail(c *gin.Context, err error, lang i18n.Lang) {
	status := http.StatusUnprocessableEntity
	code := i18n.Code(err)
	message := i18n.Message(err, lang)

	switch {
	case errors.Is(err, recipe.ErrUnknownTarget):
		status, code, message = http.StatusBadRequest, "unknown_target", err.Error()
	case errors.Is(err, models.ErrExport):
		status = http.StatusBadGateway
	case code == "internal":
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("request_id", requestID(c)), zap.Error(err))
	} else {
		h.logger.Info("request rejected", zap.String("request_id", requestID(c)), zap.String("code", code), zap.Error(err))
	}

	c.JSON(status, models.ErrorResponse{Error: code, Message: message})
}

// language prefers the explicit body field over Accept-Language.
func (h *RecipeHandler) language(c *gin.Context, explicit string) i18n.Lang {
	if explicit != "" {
		return i18n.Parse(explicit, h.defaultLang)
	}
	return i18n.Match(c.GetHeader("Accept-Language"), h.defaultLang)
}

func toRequest(body models.CalculateRequest, lang i18n.Lang) recipe.Request {
	return recipe.Request{
		Formula: body.Formula,
		Volume:  body.Volume,
		Solids:  body.Solids,
		Lang:    lang,
	}
}

// requestID returns the id assigned by the router, minting one when the
// handler runs without it.
func requestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	id := uuid.NewString()
	c.Set(RequestIDKey, id)
	return id
}
