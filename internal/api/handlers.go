package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/shopmosaic/internal/catalog"
	imagepkg "github.com/youruser/shopmosaic/internal/image"
	"github.com/youruser/shopmosaic/internal/logging"
	"github.com/youruser/shopmosaic/internal/shop"
)

// Handler serves mosaic generation and lookup endpoints.
type Handler struct {
	pipeline *shop.Pipeline
	settings shop.Settings
	logger   *slog.Logger
}

func NewHandler(p *shop.Pipeline, settings shop.Settings, logger *slog.Logger) *Handler {
	return &Handler{pipeline: p, settings: settings, logger: logging.Or(logger)}
}

// health
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func link(rel string) string { return "/" + rel }

// info returns the mosaic links for a shop hash.
func (h *Handler) info(c *gin.Context) {
	hash := strings.TrimSpace(c.Query("hash"))
	if hash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hash is required"})
		return
	}
	normal, err := imagepkg.ResolveOutputPath(imagepkg.Destination{Kind: imagepkg.DestDefault, Hash: hash})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	og, err := imagepkg.ResolveOutputPath(imagepkg.Destination{Kind: imagepkg.DestOG, Hash: hash})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hash": hash, "normalShopLink": link(normal), "ogShopLink": link(og)})
}

// qr endpoint returns a PNG of a QR for "text" query param
func (h *Handler) qr(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := 400
	if sizeStr := c.Query("size"); sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil {
			size = v
		}
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

type composeRequest struct {
	Hash string `json:"hash"`
	// Date is the shop date (YYYY-MM-DD); it drives recency and the banner.
	Date        string          `json:"date"`
	NormalTitle *string         `json:"normal_title"`
	OGTitle     *string         `json:"og_title"`
	ShowDate    *bool           `json:"show_date"`
	OG          *bool           `json:"og"`
	OGThreshold *int            `json:"og_threshold"`
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Items       []catalog.Entry `json:"items" binding:"required"`
}

func (r composeRequest) settings(base shop.Settings) shop.Settings {
	s := base
	if r.NormalTitle != nil {
		s.NormalTitle = *r.NormalTitle
	}
	if r.OGTitle != nil {
		s.OGTitle = *r.OGTitle
	}
	if r.ShowDate != nil {
		s.ShowDateNormal = *r.ShowDate
		s.ShowDateOG = *r.ShowDate
	}
	if r.OG != nil {
		s.OGEnabled = *r.OG
	}
	if r.OGThreshold != nil {
		s.OGThreshold = *r.OGThreshold
	}
	if r.Key != "" || r.Name != "" {
		s.Custom = &shop.Custom{Key: r.Key, Name: r.Name}
	}
	return s
}

// compose renders the posted items into the shop (and rare items) mosaics.
func (h *Handler) compose(c *gin.Context) {
	var req composeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := catalog.ParseShopDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]catalog.Item, 0, len(req.Items))
	for _, e := range req.Items {
		if !catalog.IsRemote(e.Image) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "item " + e.ID + ": image must be an http(s) URL"})
			return
		}
		it, err := e.Item(date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		items = append(items, it)
	}

	snapshot := shop.Shop{Hash: req.Hash, Date: date.Format(catalog.DateLayout), Items: items}
	sum, err := h.pipeline.Generate(c.Request.Context(), snapshot, req.settings(h.settings))
	var cfgErr *imagepkg.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": cfgErr.Error()})
		return
	case errors.Is(err, imagepkg.ErrNoCards):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no items", "summary": sum})
		return
	case err != nil:
		h.logger.Error("compose failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"status": "ok", "normalShopLink": link(sum.Normal.Path), "summary": sum}
	if sum.OG != nil {
		resp["ogShopLink"] = link(sum.OG.Path)
	}
	c.JSON(http.StatusOK, resp)
}
