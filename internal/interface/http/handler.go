package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/skinfit/internal/domain/advisor"
	"github.com/yanqian/skinfit/internal/domain/catalog"
	"github.com/yanqian/skinfit/internal/domain/dashboard"
	"github.com/yanqian/skinfit/internal/domain/recommend"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	advisorSvc   advisor.Service
	dashboardSvc dashboard.Service
	catalog      *catalog.Catalog
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(advisorSvc advisor.Service, dashboardSvc dashboard.Service, cat *catalog.Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		advisorSvc:   advisorSvc,
		dashboardSvc: dashboardSvc,
		catalog:      cat,
		logger:       logger.With("component", "http.handler"),
	}
}

// Health reports liveness and how many products were loaded.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "products": h.catalog.Len()})
}

// Categories lists the product categories routine steps map to.
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": catalog.Categories()})
}

// Recommendations returns an ad-hoc product selection.
func (h *Handler) Recommendations(c *gin.Context) {
	q := recommend.Query{
		SkinType: c.Query("skinType"),
		Concern:  c.Query("concern"),
		Category: catalog.Category(strings.ToLower(strings.TrimSpace(c.Query("category")))),
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, badRequest("limit must be an integer", err))
			return
		}
		q.Limit = limit
	}

	resp, err := h.advisorSvc.Recommend(c.Request.Context(), q)
	if err != nil {
		abortWithError(c, serviceError(err, "recommend_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PreviewRoutine builds a routine without saving the profile.
func (h *Handler) PreviewRoutine(c *gin.Context) {
	req, ok := bindProfile(c)
	if !ok {
		return
	}
	resp, err := h.advisorSvc.Preview(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, serviceError(err, "preview_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitProfile saves the profile and returns its routine and products.
func (h *Handler) SubmitProfile(c *gin.Context) {
	req, ok := bindProfile(c)
	if !ok {
		return
	}
	resp, err := h.advisorSvc.Submit(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, serviceError(err, "submit_failed"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Dashboard returns catalog and profile statistics.
func (h *Handler) Dashboard(c *gin.Context) {
	snap, err := h.dashboardSvc.Snapshot(c.Request.Context())
	if err != nil {
		abortWithError(c, serviceError(err, "dashboard_failed"))
		return
	}
	c.JSON(http.StatusOK, snap)
}

func bindProfile(c *gin.Context) (advisor.SubmitRequest, bool) {
	var payload profilePayload
	if err := c.ShouldBind(&payload); err != nil {
		abortWithError(c, badRequest(err.Error(), err))
		return advisor.SubmitRequest{}, false
	}
	return payload.toRequest(), true
}
