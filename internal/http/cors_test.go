package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateCORSMiddleware(t *testing.T) {
	t.Run("disabled returns nil", func(t *testing.T) {
		middleware := createCORSMiddleware(false, "https://app.example.com", discardLogger())
		assert.Nil(t, middleware)
	})

	t.Run("enabled without origins returns nil", func(t *testing.T) {
		middleware := createCORSMiddleware(true, "", discardLogger())
		assert.Nil(t, middleware)
	})

	t.Run("enabled with only whitespace origins returns nil", func(t *testing.T) {
		middleware := createCORSMiddleware(true, " , ,", discardLogger())
		assert.Nil(t, middleware)
	})

	t.Run("enabled with origins returns middleware", func(t *testing.T) {
		middleware := createCORSMiddleware(true, "https://app.example.com", discardLogger())
		assert.NotNil(t, middleware)
	})
}

func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	middleware := createCORSMiddleware(true, "https://app.example.com", discardLogger())

	router := gin.New()
	router.Use(middleware)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "https://app.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_DisallowedOrigin(t *testing.T) {
	middleware := createCORSMiddleware(true, "https://app.example.com", discardLogger())

	router := gin.New()
	router.Use(middleware)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single origin", "https://a.example.com", []string{"https://a.example.com"}},
		{
			"multiple origins with whitespace",
			" https://a.example.com , https://b.example.com ",
			[]string{"https://a.example.com", "https://b.example.com"},
		},
		{"trailing comma", "https://a.example.com,", []string{"https://a.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origins := parseOrigins(tt.input)
			if tt.expected == nil {
				assert.Empty(t, origins)
				return
			}
			assert.Equal(t, tt.expected, origins)
		})
	}
}
