package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/scitedotai/scite-vivo-integration/config"
	"github.com/scitedotai/scite-vivo-integration/models"
	"github.com/scitedotai/scite-vivo-integration/providers/scite"
	"github.com/scitedotai/scite-vivo-integration/services"
)

var (
	importRunsCounter      *prometheus.CounterVec
	processedPapersCounter prometheus.Counter
	skippedPapersCounter   prometheus.Counter
	importedTriplesCounter prometheus.Counter
)

func init() {
	importRunsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_runs_total",
			Help: "Total number of import runs by terminal status.",
		},
		[]string{"status"},
	)
	processedPapersCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "papers_processed_total",
			Help: "Total number of papers built into import graphs.",
		},
	)
	skippedPapersCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "papers_skipped_total",
			Help: "Total number of papers skipped during graph assembly.",
		},
	)
	importedTriplesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "triples_imported_total",
			Help: "Total number of triples committed to VIVO.",
		},
	)
	prometheus.MustRegister(importRunsCounter, processedPapersCounter, skippedPapersCounter, importedTriplesCounter)
}

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecretKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.APISecretKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

// recordRunMetrics aktualisiert die Prometheus-Zähler nach jedem Lauf.
func recordRunMetrics(run *models.ImportRun) {
	if run == nil {
		return
	}
	importRunsCounter.WithLabelValues(run.Status).Inc()
	processedPapersCounter.Add(float64(run.Processed))
	skippedPapersCounter.Add(float64(run.Skipped))
	if run.Status == models.RunStatusSucceeded {
		importedTriplesCounter.Add(float64(run.TripleCount))
	}
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Database Connection
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Successfully connected to import bookkeeping database.")

	logging.Info("Running database auto-migration...")
	db.AutoMigrate(&models.ImportRun{}, &models.SkippedPaper{}, &models.QueuedDOI{})

	// Setup Services
	sciteClient := scite.NewClient(cfg, logging)
	importService := services.NewImportService(cfg, db, logging, sciteClient)

	// Setup Router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(apiKeyAuthMiddleware(cfg))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Routes
	setupImportRoutes(router, importService, logging)
	setupQueueRoutes(router, importService, logging)
	setupHealthRoute(router)

	// Setup Cron
	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.CronSchedule, func() {
		logging.Info("Running scheduled queue import...")
		run, err := importService.RunQueued(context.Background())
		recordRunMetrics(run)
		if err != nil {
			logging.Error("Scheduled queue import failed", zap.Error(err))
		} else if run != nil {
			logging.Info("Scheduled queue import completed",
				zap.Uint("run_id", run.ID), zap.Int("triples", run.TripleCount))
		}
	})
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func setupImportRoutes(router *gin.Engine, importService *services.ImportService, log *zap.Logger) {
	rg := router.Group("/imports")

	// Import asynchron anstoßen; die Lauf-ID kommt sofort zurück, der
	// Ausgang steht später im Lauf-Protokoll
	rg.POST("/", func(c *gin.Context) {
		var req struct {
			DOIs []string `json:"dois" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || len(req.DOIs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body. 'dois' field is required."})
			return
		}

		run, dois, err := importService.StartImport(c.Request.Context(), req.DOIs, models.RunSourceAPI)
		if err != nil {
			log.Error("Failed to create import run", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create import run"})
			return
		}

		go func() {
			finished, err := importService.Execute(context.Background(), run, dois)
			recordRunMetrics(finished)
			if err != nil {
				log.Error("Async import run failed", zap.Uint("run_id", run.ID), zap.Error(err))
			} else {
				log.Info("Async import run completed",
					zap.Uint("run_id", finished.ID), zap.Int("triples", finished.TripleCount))
			}
		}()
		c.JSON(http.StatusAccepted, gin.H{
			"message": fmt.Sprintf("Import of %d DOIs triggered.", len(dois)),
			"run_id":  run.ID,
		})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id := c.Param("id")
		var run models.ImportRun
		if err := importService.DB.First(&run, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "import run not found"})
				return
			}
			log.Error("DB error fetching import run", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}

		var skips []models.SkippedPaper
		if err := importService.DB.Where("run_id = ?", run.ID).Find(&skips).Error; err != nil {
			log.Error("DB error fetching skip records", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"run": run, "skipped_papers": skips})
	})

	// Body-gesteuerter Endpunkt für Abfragen über Läufe
	rg.POST("/query", func(c *gin.Context) {
		type RunQuery struct {
			Status string `json:"status"`
			Source string `json:"source"`
			Limit  int    `json:"limit"`
		}

		var req RunQuery
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		query := importService.DB.Model(&models.ImportRun{})

		if req.Status != "" {
			query = query.Where("status = ?", req.Status)
		}
		if req.Source != "" {
			query = query.Where("source = ?", req.Source)
		}
		if req.Limit > 0 {
			query = query.Limit(req.Limit)
		}

		var runs []models.ImportRun
		if err := query.Order("created_at desc").Find(&runs).Error; err != nil {
			log.Error("Database query for import runs failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}

		c.JSON(http.StatusOK, runs)
	})
}

func setupQueueRoutes(router *gin.Engine, importService *services.ImportService, log *zap.Logger) {
	rg := router.Group("/queue")

	rg.POST("/", func(c *gin.Context) {
		var req struct {
			DOIs []string `json:"dois" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || len(req.DOIs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body. 'dois' field is required."})
			return
		}

		queued, err := importService.Enqueue(c.Request.Context(), req.DOIs)
		if err != nil {
			log.Error("Failed to enqueue DOIs", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"queued": queued, "received": len(req.DOIs)})
	})

	rg.GET("/", func(c *gin.Context) {
		var pending []models.QueuedDOI
		if err := importService.DB.Where("imported = ?", false).Order("created_at asc").Find(&pending).Error; err != nil {
			log.Error("Database query for queued DOIs failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, pending)
	})
}

func setupHealthRoute(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"service":  "scite-vivo-integration",
			"version":  "1.0.0",
			"features": []string{"imports", "queue", "fallback-export"},
		})
	})
}
