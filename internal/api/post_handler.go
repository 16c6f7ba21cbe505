package api

import (
	"net/http"
	"strconv"

	"github.com/blog-search-api/internal/config"
	"github.com/blog-search-api/internal/models"
	"github.com/blog-search-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// defaultRelatedLimit bounds the related-posts endpoint when the
// caller does not pass a limit.
const defaultRelatedLimit = 3

// PostHandler handles post listing and lookup endpoints
type PostHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// ListPosts handles GET /v1/posts?locale=&tag=&category=
func (h *PostHandler) ListPosts(c *gin.Context) {
	locale := resolveLocale(c, h.cfg)

	var posts []*models.Post
	switch {
	case c.Query("tag") != "":
		posts = h.services.Post.ListByTag(locale, c.Query("tag"))
	case c.Query("category") != "":
		posts = h.services.Post.ListByCategory(locale, models.CategoryID(c.Query("category")))
	default:
		posts = h.services.Post.ListAll(locale)
	}

	if posts == nil {
		posts = []*models.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost handles GET /v1/posts/:slug?locale=
func (h *PostHandler) GetPost(c *gin.Context) {
	locale := resolveLocale(c, h.cfg)
	slug := c.Param("slug")

	post := h.services.Post.GetBySlug(locale, slug)
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetRelated handles GET /v1/posts/:slug/related?locale=&limit=
func (h *PostHandler) GetRelated(c *gin.Context) {
	locale := resolveLocale(c, h.cfg)
	slug := c.Param("slug")

	post := h.services.Post.GetBySlug(locale, slug)
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	limit := defaultRelatedLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	related := h.services.Post.Related(post, limit)
	if related == nil {
		related = []*models.Post{}
	}
	c.JSON(http.StatusOK, related)
}

// ListTags handles GET /v1/tags?locale=
func (h *PostHandler) ListTags(c *gin.Context) {
	locale := resolveLocale(c, h.cfg)

	summaries := h.services.Post.TagSummaries(locale)
	if summaries == nil {
		summaries = []models.TagSummary{}
	}
	c.JSON(http.StatusOK, summaries)
}

// ListCategories handles GET /v1/categories
func (h *PostHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.Categories)
}

// ListAuthors handles GET /v1/authors
func (h *PostHandler) ListAuthors(c *gin.Context) {
	c.JSON(http.StatusOK, models.Authors)
}
