package main

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentIndex fetches the cached index snapshot, responding with a 503 if
// the corpus cannot be loaded at all. Handlers keep using the snapshot they
// were handed even if a refresh swaps in a new one mid-request.
func currentIndex(c *gin.Context) (*CachedIndex, bool) {
	ci, err := indexCache.Get()
	if err != nil {
		log.Printf("[ERROR] currentIndex: corpus load failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Corpus unavailable"})
		return nil, false
	}
	return ci, true
}

// searchSongs handles GET /api/v1/search?q=...&threshold=...
func searchSongs(c *gin.Context) {
	ci, ok := currentIndex(c)
	if !ok {
		return
	}

	query := c.Query("q")
	threshold, err := strconv.Atoi(c.DefaultQuery("threshold", strconv.Itoa(defaultFuzzyThreshold)))
	if err != nil {
		threshold = defaultFuzzyThreshold
	}

	matches := searchIndex(query, ci.Index, threshold, defaultCandidateCap)

	// Non-nil so the JSON response carries an empty array, not null.
	results := make([]SearchResultSong, 0, len(matches))
	for _, m := range matches {
		cl := m.Entry.Cluster
		results = append(results, SearchResultSong{
			Song:         m.Entry.DisplayName,
			Contributor:  m.Entry.Contributor,
			Score:        m.Score,
			Sheet:        cl.SheetName,
			Week:         cl.WeekNumber,
			RoundDisplay: cl.RoundDisplay(),
			SeedTrack:    cl.SeedTrack,
			IsSeed:       m.Entry.IsSeed,
		})
	}
	c.JSON(http.StatusOK, gin.H{"query": query, "results": results})
}

// getConnections handles GET /api/v1/connections?song=...
func getConnections(c *gin.Context) {
	ci, ok := currentIndex(c)
	if !ok {
		return
	}

	song := c.Query("song")
	clusters := songConnections(song, ci.Index)

	results := make([]ConnectionCluster, 0, len(clusters))
	for _, cl := range clusters {
		cc := ConnectionCluster{
			Sheet:           cl.SheetName,
			Week:            cl.WeekNumber,
			RoundDisplay:    cl.RoundDisplay(),
			SeedTrack:       cl.SeedTrack,
			SeedContributor: cl.SeedContributor,
			Songs:           make([]ConnectionSong, 0, len(cl.Entries)),
		}
		for _, e := range cl.Entries {
			cc.Songs = append(cc.Songs, ConnectionSong{
				Song:        e.DisplayName,
				Contributor: e.Contributor,
				IsSeed:      e.IsSeed,
				Row:         e.Row,
			})
		}
		results = append(results, cc)
	}
	c.JSON(http.StatusOK, gin.H{"song": song, "connections": results})
}

// getTopSongs handles GET /api/v1/top-songs?limit=...
func getTopSongs(c *gin.Context) {
	ci, ok := currentIndex(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultTopSongsLimit)))
	if err != nil {
		limit = defaultTopSongsLimit
	}
	if limit < 0 {
		limit = 0
	}

	songs := topSongs(ci.Index, limit)
	if songs == nil {
		songs = []TopSong{}
	}
	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

// getAllSongs handles GET /api/v1/songs (autocomplete source).
func getAllSongs(c *gin.Context) {
	ci, ok := currentIndex(c)
	if !ok {
		return
	}
	songs := allSongs(ci.Index)
	if songs == nil {
		songs = []string{}
	}
	c.JSON(http.StatusOK, songs)
}

// getAllContributors handles GET /api/v1/contributors.
func getAllContributors(c *gin.Context) {
	ci, ok := currentIndex(c)
	if !ok {
		return
	}
	contributors := allContributors(ci.Index)
	if contributors == nil {
		contributors = []string{}
	}
	c.JSON(http.StatusOK, contributors)
}

// getContributorSongs handles GET /api/v1/contributors/:name/songs.
func getContributorSongs(c *gin.Context) {
	ci, ok := currentIndex(c)
	if !ok {
		return
	}

	name := c.Param("name")
	entries := contributorSongs(name, ci.Index)

	results := make([]ContributorSong, 0, len(entries))
	for _, e := range entries {
		cl := e.Cluster
		results = append(results, ContributorSong{
			Song:         e.DisplayName,
			IsSeed:       e.IsSeed,
			Sheet:        cl.SheetName,
			Week:         cl.WeekNumber,
			RoundDisplay: cl.RoundDisplay(),
			SeedTrack:    cl.SeedTrack,
		})
	}
	c.JSON(http.StatusOK, gin.H{"contributor": name, "songs": results})
}

// getStats handles GET /api/v1/stats.
func getStats(c *gin.Context) {
	ci, ok := currentIndex(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":       corpusStats(ci.Index),
		"fingerprint": ci.Fingerprint,
		"built_at":    ci.BuiltAt,
		"diagnostics": ci.Diagnostics,
	})
}
