package main

import (
	"database/sql"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/robfig/cron/v3"
)

var db *sql.DB
var indexCache *IndexCache
var scheduler *cron.Cron

func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		log.Printf(
			"[GIN] | %d | %13v | %15s | %-7s | %s",
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.Path,
		)
		if c.Request.URL.RawQuery != "" {
			log.Printf("[GIN-QUERY] %s", c.Request.URL.RawQuery)
		}
	}
}

func main() {
	var err error
	db, err = sql.Open("sqlite3", getEnv("DB_PATH", "./songmatcher.db")+"?_journal_mode=WAL")
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	initDB()

	dataPath := getEnv("DATA_PATH", "./data")
	ttl := indexTTL()
	indexCache = NewIndexCache(func() ([]RawCell, error) {
		path, err := findCorpusFile(dataPath)
		if err != nil {
			return nil, err
		}
		return loadWorkbookCells(path)
	}, ttl)

	// Build eagerly so the first request doesn't pay for it.
	if ci, err := indexCache.Get(); err != nil {
		log.Printf("[ERROR] Initial index build failed (will retry per request): %v", err)
	} else {
		stats := corpusStats(ci.Index)
		log.Printf("[INDEX] ready: %d sheets, %d clusters, %d entries, %d groups",
			stats.Sheets, stats.Clusters, stats.Entries, stats.Groups)
	}

	startScheduler(ttl)

	r := setupRouter()

	port := getEnv("PORT", "8080")
	log.Printf("[GIN-debug] Listening and serving HTTP on :%s", port)
	r.Run(":" + port)
}

func setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(loggingMiddleware())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/search", searchSongs)
		v1.GET("/connections", getConnections)
		v1.GET("/top-songs", getTopSongs)
		v1.GET("/songs", getAllSongs)
		v1.GET("/contributors", getAllContributors)
		v1.GET("/contributors/:name/songs", getContributorSongs)
		v1.GET("/stats", getStats)

		v1.GET("/likes", getLikes)
		v1.POST("/likes", addLike)
		v1.GET("/likes/export", exportLikesCSV)
		v1.POST("/feedback", addFeedback)

		userRoutes := v1.Group("/user")
		{
			userRoutes.POST("/login", loginUser)
		}

		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(AuthMiddleware(), adminOnly())
		{
			adminRoutes.GET("/feedback", listFeedback)
			adminRoutes.GET("/validate", validateCorpus)
			adminRoutes.GET("/duplicates", getDuplicateReport)
			adminRoutes.POST("/refresh", refreshIndex)
		}
	}
	return r
}

func indexTTL() time.Duration {
	minutes, err := strconv.Atoi(getEnv("INDEX_TTL_MINUTES", "60"))
	if err != nil || minutes < 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

// startScheduler refreshes the index on a cron schedule so a swapped corpus
// file gets picked up without a restart. A stale-only refresh keeps the
// rebuild cheap when nothing changed.
func startScheduler(ttl time.Duration) {
	schedule := getEnv("REFRESH_SCHEDULE", "0 * * * *") // hourly
	if schedule == "off" {
		log.Println("Scheduled index refresh is disabled.")
		return
	}

	scheduler = cron.New()
	_, err := scheduler.AddFunc(schedule, func() {
		log.Println("Cron job triggered: refreshing song index if stale.")
		if _, err := indexCache.RefreshIfStale(ttl); err != nil {
			log.Printf("[CRON] index refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Error scheduling index refresh cron job: %v", err)
	}
	scheduler.Start()
	log.Printf("Scheduled index refresh started with schedule: '%s'", schedule)
}
