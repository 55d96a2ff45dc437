package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/internal/domain/ports"
	"github.com/hsdfat8/kitcheck/internal/domain/service"
	"github.com/hsdfat8/kitcheck/internal/kitfile"
	"github.com/hsdfat8/kitcheck/internal/observability"
)

// Handler handles HTTP requests for the kit service
type Handler struct {
	kitService ports.KitService
	database   ports.DatabaseAdapter
	logger     observability.Logger
}

// NewHandler creates a new HTTP handler. database may be nil, in which case
// the health check only reports the service itself.
func NewHandler(kitService ports.KitService, database ports.DatabaseAdapter) *Handler {
	return &Handler{
		kitService: kitService,
		database:   database,
		logger:     observability.New("http-handler", ""),
	}
}

// Validate handles POST /validate
// @Summary Validates ad-hoc inventory entries
// @Param body body ValidateRequest true "Entries and optional inline catalog"
// @Success 200 {object} ValidateResponse
// @Failure 400 {object} ProblemDetails
// @Router /validate [post]
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	kitfile.AssignEntryIDs(req.Entries)

	warnings, err := h.kitService.ValidateEntries(c.Request.Context(), req.Entries, req.Catalog)
	if err != nil {
		h.writeError(c, err, "Failed to validate entries")
		return
	}

	report := ports.NewValidationReport("", warnings, nil)
	c.JSON(http.StatusOK, ValidateResponse{
		Warnings:     report.Warnings,
		ErrorCount:   report.ErrorCount,
		WarningCount: report.WarningCount,
	})
}

// ListKits handles GET /kits
func (h *Handler) ListKits(c *gin.Context) {
	offset, limit, ok := pagination(c)
	if !ok {
		return
	}

	kits, err := h.kitService.ListKits(c.Request.Context(), offset, limit)
	if err != nil {
		h.writeError(c, err, "Failed to list kits")
		return
	}
	if kits == nil {
		kits = []*models.Kit{}
	}

	c.JSON(http.StatusOK, kits)
}

// CreateKit handles POST /kits. Blank kit and entry ids are generated.
func (h *Handler) CreateKit(c *gin.Context) {
	var kit models.Kit
	if err := c.ShouldBindJSON(&kit); err != nil {
		badRequest(c, err.Error())
		return
	}
	kitfile.AssignIDs(&kit)

	if err := h.kitService.SaveKit(c.Request.Context(), &kit); err != nil {
		h.writeError(c, err, "Failed to save kit")
		return
	}

	c.JSON(http.StatusCreated, kit)
}

// GetKit handles GET /kits/:id
func (h *Handler) GetKit(c *gin.Context) {
	kit, err := h.kitService.GetKit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to retrieve kit")
		return
	}

	c.JSON(http.StatusOK, kit)
}

// DeleteKit handles DELETE /kits/:id
func (h *Handler) DeleteKit(c *gin.Context) {
	if err := h.kitService.DeleteKit(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "Failed to delete kit")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetKitWarnings handles GET /kits/:id/warnings
func (h *Handler) GetKitWarnings(c *gin.Context) {
	report, err := h.kitService.ValidateKit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to validate kit")
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListDismissals handles GET /kits/:id/dismissals
func (h *Handler) ListDismissals(c *gin.Context) {
	kitID := c.Param("id")
	keys, err := h.kitService.ListDismissed(c.Request.Context(), kitID)
	if err != nil {
		h.writeError(c, err, "Failed to list dismissals")
		return
	}
	if keys == nil {
		keys = []models.DismissalKey{}
	}

	c.JSON(http.StatusOK, DismissalsResponse{KitID: kitID, Dismissals: keys})
}

// DismissWarning handles POST /kits/:id/dismissals
func (h *Handler) DismissWarning(c *gin.Context) {
	var key models.DismissalKey
	if err := c.ShouldBindJSON(&key); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.kitService.DismissWarning(c.Request.Context(), c.Param("id"), key); err != nil {
		h.writeError(c, err, "Failed to dismiss warning")
		return
	}

	c.Status(http.StatusNoContent)
}

// RestoreWarning handles DELETE /kits/:id/dismissals/:itemId/:type
func (h *Handler) RestoreWarning(c *gin.Context) {
	key := models.DismissalKey{
		ItemID: c.Param("itemId"),
		Type:   models.WarningType(c.Param("type")),
	}

	if err := h.kitService.RestoreWarning(c.Request.Context(), c.Param("id"), key); err != nil {
		h.writeError(c, err, "Failed to restore warning")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListEquipment handles GET /equipment
func (h *Handler) ListEquipment(c *gin.Context) {
	offset, limit, ok := pagination(c)
	if !ok {
		return
	}

	specs, err := h.kitService.ListEquipment(c.Request.Context(), models.Category(c.Query("category")), offset, limit)
	if err != nil {
		h.writeError(c, err, "Failed to list equipment")
		return
	}
	if specs == nil {
		specs = []*models.EquipmentSpec{}
	}

	c.JSON(http.StatusOK, specs)
}

// UpsertEquipment handles POST /equipment
func (h *Handler) UpsertEquipment(c *gin.Context) {
	var spec models.EquipmentSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.kitService.UpsertEquipment(c.Request.Context(), &spec); err != nil {
		h.writeError(c, err, "Failed to store equipment")
		return
	}

	c.JSON(http.StatusCreated, spec)
}

// GetEquipment handles GET /equipment/:id
func (h *Handler) GetEquipment(c *gin.Context) {
	spec, err := h.kitService.GetEquipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to retrieve equipment")
		return
	}

	c.JSON(http.StatusOK, spec)
}

// DeleteEquipment handles DELETE /equipment/:id
func (h *Handler) DeleteEquipment(c *gin.Context) {
	if err := h.kitService.DeleteEquipment(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "Failed to delete equipment")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSuggestions handles GET /equipment/:id/suggestions
func (h *Handler) GetSuggestions(c *gin.Context) {
	suggestions, err := h.kitService.SuggestAccessories(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to suggest accessories")
		return
	}

	responses := make([]SuggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		responses = append(responses, SuggestionResponse{
			Item:      s.Item,
			Layer:     int(s.Layer),
			LayerName: s.Layer.String(),
			Reason:    s.Reason,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// ListAdapters handles GET /adapters?from=&to=
func (h *Handler) ListAdapters(c *gin.Context) {
	adapters, err := h.kitService.FindAdapters(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		h.writeError(c, err, "Failed to look up adapters")
		return
	}
	if adapters == nil {
		adapters = []models.Adapter{}
	}

	c.JSON(http.StatusOK, adapters)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	if h.database == nil {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "kitcheck"})
		return
	}

	stats := h.database.GetConnectionStats()
	if err := h.database.HealthCheck(c.Request.Context()); err != nil {
		h.logger.Warnw("Database health check failed", "database", stats.DatabaseType, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"service":  "kitcheck",
			"database": stats,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "kitcheck",
		"database": stats,
	})
}

// writeError maps service errors onto ProblemDetails responses
func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		badRequest(c, err.Error())
	case errors.Is(err, service.ErrEquipmentNotFound), errors.Is(err, service.ErrKitNotFound):
		c.JSON(http.StatusNotFound, ProblemDetails{
			Type:   "about:blank",
			Title:  "Not Found",
			Status: http.StatusNotFound,
			Detail: err.Error(),
		})
	case errors.Is(err, service.ErrNotCameraBody):
		c.JSON(http.StatusUnprocessableEntity, ProblemDetails{
			Type:   "about:blank",
			Title:  "Not A Camera Body",
			Status: http.StatusUnprocessableEntity,
			Detail: err.Error(),
		})
	default:
		h.logger.Errorw(fallback, "path", c.Request.URL.Path, "error", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ProblemDetails{
			Type:   "about:blank",
			Title:  "Internal Server Error",
			Status: http.StatusInternalServerError,
			Detail: fallback,
		})
	}
}

func badRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:   "about:blank",
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: detail,
	})
}

// pagination reads offset and limit; on a malformed value it writes a 400
// and returns ok=false
func pagination(c *gin.Context) (offset, limit int, ok bool) {
	var err error
	if v := c.Query("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			badRequest(c, "Query parameter 'offset' must be a non-negative integer")
			return 0, 0, false
		}
	}
	if v := c.Query("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 0 {
			badRequest(c, "Query parameter 'limit' must be a non-negative integer")
			return 0, 0, false
		}
	}
	return offset, limit, true
}
