package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var feedbackTypes = map[string]bool{
	"bug":     true,
	"idea":    true,
	"data":    true, // wrong/missing song data
	"other":   true,
	"praise":  true,
	"request": true,
}

// addFeedback handles POST /api/v1/feedback.
func addFeedback(c *gin.Context) {
	var body struct {
		Type        string `json:"type"`
		Description string `json:"description"`
		Contact     string `json:"contact"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	body.Type = strings.ToLower(strings.TrimSpace(body.Type))
	if !feedbackTypes[body.Type] {
		body.Type = "other"
	}
	if strings.TrimSpace(body.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description required"})
		return
	}

	fb := Feedback{
		Type:        body.Type,
		Description: strings.TrimSpace(body.Description),
		Contact:     strings.TrimSpace(body.Contact),
	}
	if err := InsertFeedback(db, &fb); err != nil {
		log.Printf("[ERROR] addFeedback: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store feedback"})
		return
	}
	c.JSON(http.StatusCreated, fb)
}

// listFeedback handles GET /api/v1/admin/feedback (admin only).
func listFeedback(c *gin.Context) {
	items, err := ListFeedback(db)
	if err != nil {
		log.Printf("[ERROR] listFeedback: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feedback"})
		return
	}
	if items == nil {
		items = []Feedback{}
	}
	c.JSON(http.StatusOK, items)
}
