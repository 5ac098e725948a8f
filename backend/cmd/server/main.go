package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/graph"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/hashtag"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/mirror"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/scheduler"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/social"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/store"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/suggest"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/trending"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/config"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/logger"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting EsporTz API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	// Verify Neo4j connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	// Initialize Postgres
	db, err := store.Open(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", zap.Error(err))
	}

	// Initialize dependencies
	graphRepo := graph.NewRepository(driver)
	graphMirror := mirror.New(graphRepo)

	users := store.NewUserRepository(db)
	posts := store.NewPostRepository(db)
	hashtags := store.NewHashtagRepository(db)
	follows := store.NewFollowRepository(db)
	likes := store.NewLikeRepository(db)
	reposts := store.NewRepostRepository(db)

	registry := hashtag.NewRegistry(hashtags, graphMirror)
	suggestEngine := suggest.NewEngine(graphRepo, users)
	trendingEngine := trending.NewEngine(
		graphRepo,
		trending.NewCache(cfg.TrendingCacheTTL),
		cfg.TrendingDoublePrevious,
	)

	followService := social.NewFollowService(follows, graphMirror)
	engagementService := social.NewEngagementService(likes, reposts, graphMirror)
	userService := social.NewUserService(users, graphMirror)
	postService := social.NewPostService(posts, registry)

	// Background jobs
	jobs := scheduler.New(trendingEngine, suggestEngine, users, scheduler.Options{
		TrendingEvery:   cfg.TrendingRefreshEvery,
		PrecomputeEvery: cfg.SuggestPrecomputeEvery,
		BatchSize:       cfg.SuggestBatchSize,
		BatchDelay:      cfg.SuggestBatchDelay,
	})
	jobs.Start()
	defer jobs.Stop()

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api")
	{
		// Follow suggestions
		api.GET("/users/:id/suggestions", func(c *gin.Context) {
			limit := intQuery(c, "limit", suggest.DefaultLimit)

			result, err := suggestEngine.GetSuggestions(c.Request.Context(), c.Param("id"), limit)
			if err != nil {
				log.Error("Failed to compute suggestions", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute suggestions"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"suggestions": result})
		})

		// Trending hashtags; the engine never fails on this path
		api.GET("/hashtags/trending", func(c *gin.Context) {
			window, ok := trending.ParseWindow(c.DefaultQuery("window", string(trending.WindowDay)))
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown window"})
				return
			}
			limit := intQuery(c, "limit", trending.DefaultLimit)

			c.JSON(http.StatusOK, gin.H{
				"trending": trendingEngine.GetTrending(c.Request.Context(), window, limit),
			})
		})

		// Users
		api.POST("/users", func(c *gin.Context) {
			var req struct {
				Username    string `json:"username" binding:"required"`
				DisplayName string `json:"display_name" binding:"required"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			user, err := userService.Create(c.Request.Context(), req.Username, req.DisplayName)
			if err != nil {
				log.Error("Failed to create user", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
			c.JSON(http.StatusCreated, user)
		})

		api.PUT("/users/:id", func(c *gin.Context) {
			var req struct {
				DisplayName string `json:"display_name" binding:"required"`
				Bio         string `json:"bio"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			user, err := userService.UpdateProfile(c.Request.Context(), c.Param("id"), req.DisplayName, req.Bio)
			if err != nil {
				log.Error("Failed to update profile", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
				return
			}
			if user == nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusOK, user)
		})

		// Follows
		api.POST("/users/:id/follow/:target", func(c *gin.Context) {
			followed, err := followService.Follow(c.Request.Context(), c.Param("id"), c.Param("target"))
			if err != nil {
				log.Error("Failed to create follow", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create follow"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"followed": followed})
		})

		api.DELETE("/users/:id/follow/:target", func(c *gin.Context) {
			if err := followService.Unfollow(c.Request.Context(), c.Param("id"), c.Param("target")); err != nil {
				log.Error("Failed to remove follow", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove follow"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"followed": false})
		})

		// Posts
		api.POST("/posts", func(c *gin.Context) {
			var req struct {
				AuthorID string `json:"author_id" binding:"required"`
				Content  string `json:"content" binding:"required"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			post, err := postService.Create(c.Request.Context(), req.AuthorID, req.Content)
			if err != nil {
				log.Error("Failed to create post", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
				return
			}
			c.JSON(http.StatusCreated, post)
		})

		api.DELETE("/posts/:id", func(c *gin.Context) {
			if err := postService.Delete(c.Request.Context(), c.Param("id")); err != nil {
				log.Error("Failed to delete post", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"deleted": true})
		})

		// Likes and reposts
		api.POST("/posts/:id/like", func(c *gin.Context) {
			userID := c.Query("user_id")
			if userID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
				return
			}
			liked, err := engagementService.Like(c.Request.Context(), userID, c.Param("id"))
			if err != nil {
				log.Error("Failed to create like", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create like"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"liked": liked})
		})

		api.POST("/posts/:id/repost", func(c *gin.Context) {
			userID := c.Query("user_id")
			if userID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
				return
			}
			reposted, err := engagementService.Repost(c.Request.Context(), userID, c.Param("id"))
			if err != nil {
				log.Error("Failed to create repost", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create repost"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"reposted": reposted})
		})
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

func intQuery(c *gin.Context, key string, defaultValue int) int {
	var result int
	if _, err := fmt.Sscanf(c.Query(key), "%d", &result); err != nil || result <= 0 {
		return defaultValue
	}
	return result
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
