package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlphaNewsNetwork/alphanews/app/database"
	"github.com/AlphaNewsNetwork/alphanews/app/pipeline"
	"github.com/AlphaNewsNetwork/alphanews/app/styles"
)

func NewHandler(storyPipeline StoryPipelineInterface, reader FeedReaderInterface,
	submissionRepo database.SubmissionRepository, styleCache *styles.ConfigCache) *Handler {
	return &Handler{
		storyPipeline:  storyPipeline,
		reader:         reader,
		submissionRepo: submissionRepo,
		styleCache:     styleCache,
	}
}

func (h *Handler) SubmitStory(c *gin.Context) {
	var req SubmitStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "URL is required"})
		return
	}

	result, err := h.storyPipeline.Run(c.Request.Context(), req.URL, req.Style)
	if err != nil {
		var validationErr *pipeline.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
			return
		}

		slog.Error("Story submission failed", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error processing story",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Story submitted successfully!",
		"entryId":  result.EntryID,
		"imageUrl": result.ImageURL,
	})
}

func (h *Handler) GenerateScript(c *gin.Context) {
	var payload pipeline.ScriptPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	script, err := h.storyPipeline.RunScript(c.Request.Context(), payload)
	if err != nil {
		var validationErr *pipeline.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
			return
		}

		slog.Error("Script generation failed", "entry_id", payload.Sys.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate script",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"script": script})
}

func (h *Handler) GetStories(c *gin.Context) {
	entries, err := h.reader.ListStories(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list stories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stories": entries,
		"total":   len(entries),
	})
}

func (h *Handler) GetStoryBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slug parameter"})
		return
	}

	entry, err := h.reader.GetStoryBySlug(c.Request.Context(), slug)
	if err != nil {
		slog.Error("Failed to fetch story", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch story"})
		return
	}

	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) GetVideos(c *gin.Context) {
	entries, err := h.reader.ListVideos(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list videos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch videos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": entries,
		"total":  len(entries),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if submissionCount, err := h.submissionRepo.Count(); err == nil {
		health["submissions"] = submissionCount
	}
	if failedCount, err := h.submissionRepo.CountByStatus(database.StatusFailed); err == nil {
		health["failed_submissions"] = failedCount
	}

	health["loaded_styles"] = h.styleCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}
