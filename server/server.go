// Package server exposes the scraper and analyzer over an HTTP control
// plane: endpoints start background tasks, clients poll task status and
// download the produced files.
package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"shopee-scraper/config"
	"shopee-scraper/scraper/shopee"
	"shopee-scraper/services"
	"shopee-scraper/session"
	"shopee-scraper/storage"
	"shopee-scraper/utils"
	"shopee-scraper/wordcloud"
)

// Server wires the HTTP routes to the scraping and analytics cores.
type Server struct {
	cfg    *config.Config
	logger *utils.Logger
	tasks  *TaskRegistry

	mu   sync.Mutex
	sess *session.Session
}

// New creates a Server.
func New(cfg *config.Config, logger *utils.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		tasks:  NewTaskRegistry(logger),
	}
}

// Run starts the task janitor and serves until the listener fails.
func (s *Server) Run() error {
	go s.tasks.CleanupLoop(5*time.Minute, time.Hour)

	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	s.logger.Info("[server] Listening on %s", addr)
	return s.Router().Run(addr)
}

// Router builds the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	api := router.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/initialize-driver", s.handleInitDriver)
	api.POST("/search", s.handleSearch)
	api.POST("/shop", s.handleShop)
	api.POST("/reviews", s.handleReviews)
	api.POST("/analyze", s.handleAnalyze)
	api.GET("/task-status/:id", s.handleTaskStatus)
	api.POST("/tasks/:id/resolve-captcha", s.handleResolveCaptcha)
	api.GET("/files", s.handleListFiles)
	api.GET("/download/:filename", s.handleDownload)
	api.POST("/cleanup", s.handleCleanup)

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	s.mu.Lock()
	ready := s.sess != nil
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "driver_initialized": ready})
}

func (s *Server) handleInitDriver(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess != nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Driver already initialized."})
		return
	}

	sess, err := session.Open(s.cfg, s.logger)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	s.sess = sess
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Driver initialized. Please login in the browser window.",
	})
}

func (s *Server) handleSearch(c *gin.Context) {
	var req struct {
		Keyword string `json:"keyword"`
		Pages   int    `json:"pages"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}
	if req.Keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Keyword is required"})
		return
	}
	if req.Pages <= 0 {
		req.Pages = s.cfg.MaxSearchPages
	}

	sess, ok := s.requireSession(c)
	if !ok {
		return
	}

	outPath := filepath.Join(s.cfg.OutputDir,
		"search_"+strings.ReplaceAll(req.Keyword, " ", "_")+".csv")

	taskID := s.tasks.Create()
	s.tasks.Run(taskID, func() (any, error) {
		scraper := s.taskScraper(taskID, sess)
		count, err := scraper.ScrapeSearch(req.Keyword, req.Pages, outPath)
		if err != nil {
			return nil, err
		}
		return gin.H{"output_file": outPath, "keyword": req.Keyword, "total_items": count}, nil
	})

	s.accepted(c, taskID, "Search started.")
}

func (s *Server) handleShop(c *gin.Context) {
	var req struct {
		ShopID         string `json:"shop_id"`
		IncludeActive  *bool  `json:"include_active"`
		IncludeSoldOut *bool  `json:"include_soldout"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}
	if req.ShopID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Shop ID is required"})
		return
	}

	active := req.IncludeActive == nil || *req.IncludeActive
	soldOut := req.IncludeSoldOut == nil || *req.IncludeSoldOut

	sess, ok := s.requireSession(c)
	if !ok {
		return
	}

	outPath := filepath.Join(s.cfg.OutputDir, "shop_"+req.ShopID+".csv")

	taskID := s.tasks.Create()
	s.tasks.Run(taskID, func() (any, error) {
		scraper := s.taskScraper(taskID, sess)
		nActive, nSoldOut, err := scraper.ScrapeShop(req.ShopID, active, soldOut, outPath)
		if err != nil {
			return nil, err
		}
		return gin.H{
			"output_file": outPath,
			"shop_id":     req.ShopID,
			"active":      nActive,
			"soldout":     nSoldOut,
		}, nil
	})

	s.accepted(c, taskID, "Shop scraping started.")
}

func (s *Server) handleReviews(c *gin.Context) {
	inputPath, ok := s.saveUpload(c)
	if !ok {
		return
	}

	maxReviews := s.cfg.MaxReviewsPerProduct
	if v := c.PostForm("max_reviews"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxReviews = n
		}
	}

	sess, ok := s.requireSession(c)
	if !ok {
		return
	}

	outPath := filepath.Join(s.cfg.OutputDir,
		fmt.Sprintf("reviews_%d.csv", time.Now().Unix()))

	taskID := s.tasks.Create()
	s.tasks.Run(taskID, func() (any, error) {
		scraper := s.taskScraper(taskID, sess)
		products, reviews, err := scraper.ScrapeReviews(inputPath, outPath, maxReviews)
		if err != nil {
			return nil, err
		}
		return gin.H{
			"output_file":    outPath,
			"total_products": products,
			"total_reviews":  reviews,
		}, nil
	})

	s.accepted(c, taskID, "Review scraping started.")
}

func (s *Server) handleAnalyze(c *gin.Context) {
	inputPath, ok := s.saveUpload(c)
	if !ok {
		return
	}

	outPath := filepath.Join(s.cfg.OutputDir,
		fmt.Sprintf("analysis_%d.csv", time.Now().Unix()))

	taskID := s.tasks.Create()
	s.tasks.Run(taskID, func() (any, error) {
		logger := s.tasks.Logger(s.logger, taskID)

		table, err := storage.ReadTable(inputPath)
		if err != nil {
			return nil, err
		}

		renderer := wordcloud.NewPNGRenderer(s.cfg.WordcloudDir, s.cfg.FontPath)
		analyzer := services.NewAnalyzer(logger, renderer)
		summaries, err := analyzer.Analyze(table)
		if err != nil {
			return nil, err
		}

		writer, err := storage.NewSummaryWriter(outPath)
		if err != nil {
			return nil, err
		}
		defer writer.Close()
		if err := writer.WriteSummaries(summaries); err != nil {
			return nil, err
		}

		var ratingSum, consensusSum float64
		for _, sm := range summaries {
			ratingSum += sm.AverageRating
			consensusSum += sm.ConsensusScore
		}
		result := gin.H{"total_products": len(summaries), "output_file": outPath}
		if len(summaries) > 0 {
			n := float64(len(summaries))
			result["avg_rating"] = round2(ratingSum / n)
			result["avg_consensus"] = round2(consensusSum / n)
		}
		return result, nil
	})

	s.accepted(c, taskID, "Analysis started.")
}

func (s *Server) handleTaskStatus(c *gin.Context) {
	view, ok := s.tasks.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleResolveCaptcha(c *gin.Context) {
	if !s.tasks.ResolveCaptcha(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No task awaiting captcha with that id"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleListFiles(c *gin.Context) {
	entries, err := os.ReadDir(s.cfg.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusOK, gin.H{"files": []gin.H{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	files := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, gin.H{
			"filename": e.Name(),
			"size":     info.Size(),
			"created":  info.ModTime().Unix(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (s *Server) handleDownload(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	path := filepath.Join(s.cfg.OutputDir, filename)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	c.FileAttachment(path, filename)
}

func (s *Server) handleCleanup(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess != nil {
		if err := s.sess.Close(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		s.sess = nil
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Driver closed"})
}

// taskScraper builds a scraper whose logs feed the task and whose captcha
// waits surface as the awaiting-captcha task state.
func (s *Server) taskScraper(taskID string, sess *session.Session) *shopee.Scraper {
	logger := s.tasks.Logger(s.logger, taskID)
	return shopee.New(s.cfg, sess, logger, func() error {
		return s.tasks.AwaitCaptcha(taskID)
	})
}

func (s *Server) requireSession(c *gin.Context) (*session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Driver not initialized"})
		return nil, false
	}
	return s.sess, true
}

// saveUpload stores the uploaded CSV into the upload dir and returns its path.
func (s *Server) saveUpload(c *gin.Context) (string, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No file uploaded"})
		return "", false
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Only CSV files allowed"})
		return "", false
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return "", false
	}

	path := filepath.Join(s.cfg.UploadDir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return "", false
	}
	return path, true
}

func (s *Server) accepted(c *gin.Context, taskID, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task_id": taskID,
		"message": message + " Poll /api/task-status/" + taskID + " for progress.",
	})
}

// corsMiddleware allows the dashboard frontend to call the API from another
// origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
