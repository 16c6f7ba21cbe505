package api

import (
	"net/http"

	"github.com/blog-search-api/internal/config"
	"github.com/blog-search-api/internal/models"
	"github.com/blog-search-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SearchHandler handles the search endpoint
type SearchHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "search").Logger(),
	}
}

// searchItem is the wire shape of one search result.
type searchItem struct {
	Slug        string   `json:"slug"`
	Date        string   `json:"date"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
}

// Search handles GET /v1/search?locale=&q=&categories=&authors=&tags=&sort=
// The whole filter state decodes through the same codec the in-process
// callers use; results are truncated to the configured page size.
func (h *SearchHandler) Search(c *gin.Context) {
	locale := resolveLocale(c, h.cfg)
	filters := models.DecodeFilters(c.Request.URL.Query())

	results := h.services.Search.Search(locale, filters)
	if len(results) > h.cfg.Search.PageSize {
		results = results[:h.cfg.Search.PageSize]
	}

	items := make([]searchItem, len(results))
	for i, r := range results {
		items[i] = searchItem{
			Slug:        r.Post.Slug,
			Date:        r.Post.Date.Format("2006-01-02"),
			Title:       r.Post.Title,
			Description: r.Post.Description,
			Tags:        r.Post.Tags,
			URL:         r.Post.URL,
		}
	}
	c.JSON(http.StatusOK, items)
}

// resolveLocale maps an unknown or absent locale parameter to the
// configured default instead of failing the request.
func resolveLocale(c *gin.Context, cfg *config.Config) string {
	locale := c.Query("locale")
	if !cfg.HasLocale(locale) {
		return cfg.Content.DefaultLocale
	}
	return locale
}
