package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agrivision/agrivision/internal/domain/i18n"
	"github.com/agrivision/agrivision/internal/domain/market"
	"github.com/agrivision/agrivision/internal/domain/region"
	"github.com/agrivision/agrivision/internal/domain/report"
	"github.com/agrivision/agrivision/internal/domain/session"
)

// Handler wires the HTTP transport to the session controller and the static
// catalog data.
type Handler struct {
	controller *session.Controller
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(controller *session.Controller, logger *slog.Logger) *Handler {
	return &Handler{
		controller: controller,
		logger:     logger.With("component", "http.handler"),
	}
}

type createSessionRequest struct {
	Language string `json:"language"`
}

// CreateSession opens a new session and returns its initial snapshot.
func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	snap, err := h.controller.Create(req.Language)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// GetSession returns the current session snapshot.
func (h *Handler) GetSession(c *gin.Context) {
	snap, err := h.controller.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

type setLanguageRequest struct {
	Language string `json:"language"`
}

// SetLanguage switches the session language and resets the chat thread.
func (h *Handler) SetLanguage(c *gin.Context) {
	var req setLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	snap, err := h.controller.SetLanguage(c.Param("id"), req.Language)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

type setPageRequest struct {
	Page string `json:"page"`
}

// SetPage switches the visible page.
func (h *Handler) SetPage(c *gin.Context) {
	var req setPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	snap, err := h.controller.SetPage(c.Param("id"), req.Page)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

type analyzeImageRequest struct {
	ImageData string `json:"imageData"`
	MIMEType  string `json:"mimeType"`
}

// AnalyzeImage uploads a plant photo and runs the diagnosis.
func (h *Handler) AnalyzeImage(c *gin.Context) {
	var req analyzeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if req.MIMEType == "" {
		req.MIMEType = "image/jpeg"
	}
	snap, err := h.controller.AnalyzeImage(c.Request.Context(), c.Param("id"), req.ImageData, req.MIMEType)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetImage serves the session's uploaded photo back to the client.
func (h *Handler) GetImage(c *gin.Context) {
	data, mimeType, err := h.controller.Image(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.Data(http.StatusOK, mimeType, data)
}

// ClearImage discards the uploaded image and any analysis result.
func (h *Handler) ClearImage(c *gin.Context) {
	snap, err := h.controller.ClearImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

type chatRequest struct {
	Text string `json:"text"`
}

// Chat sends one advisory message and returns the updated thread.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	snap, err := h.controller.Chat(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

type featureView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// ListFeatures returns the feature catalog with names resolved for the
// requested language.
func (h *Handler) ListFeatures(c *gin.Context) {
	lang, err := i18n.Parse(c.Query("lang"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	features := report.Features()
	views := make([]featureView, 0, len(features))
	for _, f := range features {
		views = append(views, featureView{
			ID:          f.ID,
			Name:        i18n.Label(lang, f.Name),
			Icon:        f.Icon,
			Status:      f.Status,
			Description: i18n.Label(lang, f.Description),
		})
	}
	c.JSON(http.StatusOK, gin.H{"features": views})
}

type generateReportRequest struct {
	FeatureID string `json:"featureId"`
}

// GenerateReport opens the report modal and generates the feature insight.
func (h *Handler) GenerateReport(c *gin.Context) {
	var req generateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if req.FeatureID == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "featureId is required", nil))
		return
	}
	snap, err := h.controller.GenerateReport(c.Request.Context(), c.Param("id"), req.FeatureID)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// CloseReport dismisses the report modal.
func (h *Handler) CloseReport(c *gin.Context) {
	snap, err := h.controller.CloseReport(c.Param("id"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ExportReport downloads the current report as JSON or a printable document.
func (h *Handler) ExportReport(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	exported, err := h.controller.ExportReport(c.Param("id"), format)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exported.Filename+`"`)
	c.Data(http.StatusOK, exported.ContentType, exported.Data)
}

type analyzeRegionRequest struct {
	Lat    *float64            `json:"lat"`
	Lon    *float64            `json:"lon"`
	Area   []region.Coordinate `json:"area"`
	Denied bool                `json:"denied"`
}

// AnalyzeRegion assesses agricultural potential at a coordinate or area.
func (h *Handler) AnalyzeRegion(c *gin.Context) {
	var req analyzeRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	snap, err := h.controller.AnalyzeRegion(c.Request.Context(), c.Param("id"), session.RegionRequest{
		Lat:    req.Lat,
		Lon:    req.Lon,
		Area:   req.Area,
		Denied: req.Denied,
	})
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Weather serves current conditions plus derived alerts.
func (h *Handler) Weather(c *gin.Context) {
	var lat, lon *float64
	if v := c.Query("lat"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "lat must be a number", err))
			return
		}
		lat = &parsed
	}
	if v := c.Query("lon"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "lon must be a number", err))
			return
		}
		lon = &parsed
	}
	denied := c.Query("denied") == "true"

	snap, err := h.controller.WeatherSnapshot(c.Request.Context(), lat, lon, denied)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// MarketItems lists produce listings filtered by category and search text.
func (h *Handler) MarketItems(c *gin.Context) {
	items := market.Items(c.DefaultQuery("category", "All"), c.Query("search"))
	c.JSON(http.StatusOK, gin.H{"items": items, "categories": market.Categories})
}

// CommunityPosts lists community posts filtered by search text.
func (h *Handler) CommunityPosts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"posts": market.Posts(c.Query("search"))})
}

// Languages lists the supported UI languages.
func (h *Handler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": i18n.Supported()})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
