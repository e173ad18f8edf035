package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GraftonJ/repsy-be/internal/handler"
	"github.com/GraftonJ/repsy-be/internal/handler/doctor"
	"github.com/GraftonJ/repsy-be/internal/handler/medication"
	"github.com/GraftonJ/repsy-be/internal/middleware"
	"github.com/GraftonJ/repsy-be/pkg/metrics"
)

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
	CORSConfig     middleware.CORSConfig
	MetricsPrefix  string
}

type Router struct {
	engine  *gin.Engine
	auth    *middleware.AuthMiddleware
	doctorH *doctor.Handler
	medH    *medication.Handler
	healthH *handler.HealthHandler
	metrics *metrics.HTTPMetrics
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	doctorH *doctor.Handler,
	medH *medication.Handler,
	healthH *handler.HealthHandler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:  engine,
		auth:    auth,
		doctorH: doctorH,
		medH:    medH,
		healthH: healthH,
		metrics: metrics.NewHTTPMetrics(config.MetricsPrefix),
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.Timeout(config.RequestTimeout),
		middleware.CORS(config.CORSConfig),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   config.RateLimitRPS,
		Burst: config.RateLimitBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	root := r.engine.Group("")

	health := root.Group("/health")
	{
		health.GET("/live", r.healthH.LivenessCheck)
		health.GET("/ready", r.healthH.ReadinessCheck)
	}

	root.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.doctorH.RegisterRoutes(root, r.auth)
	r.medH.RegisterRoutes(root)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		r.metrics.RequestsTotal.WithLabelValues(method, path, status).Inc()
		if c.Writer.Status() >= 400 {
			r.metrics.ErrorsTotal.WithLabelValues(method, path, status).Inc()
		}
	}
}
