package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// refreshIndex handles POST /api/v1/admin/refresh: force-rebuild the index
// from the corpus file, e.g. after the sheet was re-uploaded.
func refreshIndex(c *gin.Context) {
	ci, err := indexCache.Refresh()
	if err != nil {
		log.Printf("[ERROR] refreshIndex: rebuild failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rebuild failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"fingerprint": ci.Fingerprint,
		"built_at":    ci.BuiltAt,
		"stats":       corpusStats(ci.Index),
		"diagnostics": ci.Diagnostics,
	})
}

// validateCorpus handles GET /api/v1/admin/validate: structural report over
// the raw cells the current index was built from.
func validateCorpus(c *gin.Context) {
	ci, ok := currentIndex(c)
	if !ok {
		return
	}
	report := validateCells(ci.Cells)
	if report.Issues == nil {
		report.Issues = []SheetIssue{}
	}
	c.JSON(http.StatusOK, report)
}

// getDuplicateReport handles GET /api/v1/admin/duplicates: every normalized
// key with more than one spelling variant, for sheet cleanup.
func getDuplicateReport(c *gin.Context) {
	ci, ok := currentIndex(c)
	if !ok {
		return
	}
	dups := duplicateReport(ci.Index)
	if dups == nil {
		dups = []DuplicateGroup{}
	}
	c.JSON(http.StatusOK, gin.H{"duplicates": dups, "count": len(dups)})
}
