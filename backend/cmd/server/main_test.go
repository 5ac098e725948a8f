package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/trending"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "ok", response["status"])
}

func TestCreateUserEndpoint_InvalidRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Mock endpoint
	router.POST("/api/users", func(c *gin.Context) {
		var req struct {
			Username    string `json:"username" binding:"required"`
			DisplayName string `json:"display_name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": "created"})
	})

	// Test missing fields
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/users", bytes.NewBuffer([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrendingEndpoint_UnknownWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Mock endpoint with the real window parsing
	router.GET("/api/hashtags/trending", func(c *gin.Context) {
		window, ok := trending.ParseWindow(c.DefaultQuery("window", string(trending.WindowDay)))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown window"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"window": string(window)})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/hashtags/trending?window=2d", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Default window applies when the param is absent
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/hashtags/trending", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "24h", response["window"])
}

func TestIntQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query    string
		expected int
	}{
		{"limit=7", 7},
		{"limit=0", 5},
		{"limit=-3", 5},
		{"limit=abc", 5},
		{"", 5},
	}

	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request, _ = http.NewRequest("GET", "/?"+tc.query, nil)
		assert.Equal(t, tc.expected, intQuery(c, "limit", 5), "query %q", tc.query)
	}
}
