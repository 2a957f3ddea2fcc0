package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Requests      *prometheus.CounterVec
	Duration      *prometheus.HistogramVec
	LoginFailures *prometheus.CounterVec
	PostsCreated  prometheus.Counter
	CommentsAdded prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_http_requests_total",
				Help: "Total number of HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blog_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		LoginFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_login_failures_total",
				Help: "Total number of failed logins by reason",
			},
			[]string{"reason"},
		),
		PostsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blog_posts_created_total",
			Help: "Total number of posts created",
		}),
		CommentsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blog_comments_added_total",
			Help: "Total number of comments added",
		}),
	}

	reg.MustRegister(m.Requests, m.Duration, m.LoginFailures, m.PostsCreated, m.CommentsAdded)
	return m
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.Duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
