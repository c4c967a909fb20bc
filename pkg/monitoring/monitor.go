package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// GateDecisionCounter 按门控类型与结果统计洞察门控判定
	GateDecisionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_gate_decisions_total",
			Help: "Evidence gate decisions by gate and outcome",
		},
		[]string{"gate", "outcome"},
	)

	// RecommendationCounter 统计已生成的任务推荐条数
	RecommendationCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quest_recommendations_total",
			Help: "Total number of quest recommendations served",
		},
	)

	// ScoreClampCounter 统计被钳位的越界归一化得分，便于发现上游打分缺陷
	ScoreClampCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "skill_score_clamps_total",
			Help: "Normalized scores outside [0,100] that were clamped",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(GateDecisionCounter)
	prometheus.MustRegister(RecommendationCounter)
	prometheus.MustRegister(ScoreClampCounter)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func ObserveGate(gate string, met bool) {
	outcome := "closed"
	if met {
		outcome = "open"
	}
	GateDecisionCounter.WithLabelValues(gate, outcome).Inc()
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
