package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Move results
const (
	MoveAccepted = "accepted"
	MoveRejected = "rejected"
)

var (
	gamesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_games_created_total",
		Help: "Games created, by the side the player chose",
	}, []string{"side"})

	gamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_games_finished_total",
		Help: "Games that reached a win or a draw, by final status",
	}, []string{"status"})

	moves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_moves_total",
		Help: "Player moves submitted, by validation result",
	}, []string{"result"})

	solverDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tictactoe_solver_duration_seconds",
		Help:    "Time spent choosing the engine's move",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_http_requests_total",
		Help: "HTTP requests by method, route template and status code",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tictactoe_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route template",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// GameCreated counts a new game
func GameCreated(side string) {
	gamesCreated.WithLabelValues(side).Inc()
}

// GameFinished counts a game that ended with status
func GameFinished(status string) {
	gamesFinished.WithLabelValues(status).Inc()
}

// MoveSubmitted counts a player move with its validation result
func MoveSubmitted(result string) {
	moves.WithLabelValues(result).Inc()
}

// ObserveSolve records how long the engine took to pick a move
func ObserveSolve(d time.Duration) {
	solverDuration.Observe(d.Seconds())
}

// ObserveRequest records one HTTP request
func ObserveRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the default registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.Handler()
}
