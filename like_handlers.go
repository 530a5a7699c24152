package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// getLikes handles GET /api/v1/likes.
func getLikes(c *gin.Context) {
	likes, err := GetLikes(db)
	if err != nil {
		log.Printf("[ERROR] getLikes: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load likes"})
		return
	}
	c.JSON(http.StatusOK, likes)
}

// addLike handles POST /api/v1/likes with body {"song": "..."}.
func addLike(c *gin.Context) {
	var body struct {
		Song string `json:"song"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Song) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Song name required"})
		return
	}

	count, err := AddLike(db, strings.TrimSpace(body.Song))
	if err != nil {
		log.Printf("[ERROR] addLike: update failed for %q: %v", body.Song, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store like"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"song": strings.TrimSpace(body.Song), "count": count})
}

// exportLikesCSV handles GET /api/v1/likes/export.
func exportLikesCSV(c *gin.Context) {
	likes, err := GetLikes(db)
	if err != nil {
		log.Printf("[ERROR] exportLikesCSV: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load likes"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="likes.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(LikesCSV(likes)))
}
