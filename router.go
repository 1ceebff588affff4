package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"climate-science-service/auth"
	"climate-science-service/config"
	"climate-science-service/export"
	"climate-science-service/query"
)

// serverEnv bundles what the route handlers share.
type serverEnv struct {
	cfg    *config.Config
	log    *zap.Logger
	db     *gorm.DB
	exec   *query.Executor
	tokens *auth.TokenService
	pdf    *export.PDFRenderer
}

// resourceMethods lists the verbs each resource family supports, answered on
// CORS preflight and advertised by Access-Control-Allow-Methods.
var resourceMethods = map[string]string{
	"person":      "GET, OPTIONS",
	"publication": "GET, OPTIONS",
	"declaration": "GET, OPTIONS",
	"quotation":   "GET, PATCH, OPTIONS",
	"authorship":  "PUT, DELETE, OPTIONS",
	"signatory":   "PUT, DELETE, OPTIONS",
	"statistics":  "GET, OPTIONS",
	"auth":        "POST, OPTIONS",
}

func newRouter(env *serverEnv) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(metricsMiddleware())
	router.HandleMethodNotAllowed = true

	// An unknown path is a malformed request, not a missing resource, except
	// for preflight which answers for the whole resource family.
	router.NoRoute(func(c *gin.Context) {
		if answerPreflight(c) {
			return
		}
		c.AbortWithStatus(http.StatusBadRequest)
	})
	router.NoMethod(func(c *gin.Context) {
		if answerPreflight(c) {
			return
		}
		c.AbortWithStatus(http.StatusMethodNotAllowed)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupPersonRoutes(router, env)
	setupPublicationRoutes(router, env)
	setupDeclarationRoutes(router, env)
	setupQuotationRoutes(router, env)
	setupAuthorshipRoutes(router, env)
	setupSignatoryRoutes(router, env)
	setupStatisticsRoutes(router, env)
	setupAuthRoutes(router, env)

	return router
}

func answerPreflight(c *gin.Context) bool {
	if c.Request.Method != http.MethodOptions {
		return false
	}
	methods, ok := resourceMethods[resourceFamily(c.Request.URL.Path)]
	if !ok {
		return false
	}
	c.Header("Access-Control-Allow-Methods", methods)
	c.Status(http.StatusOK)
	c.Abort()
	return true
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Next()
	}
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		requestCounter.WithLabelValues(
			resourceFamily(c.Request.URL.Path),
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

func resourceFamily(path string) string {
	segments := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)
	return segments[0]
}
