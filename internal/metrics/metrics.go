package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	StepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "autofarm_steps_total", Help: "Step executions by category and outcome"},
		[]string{"category", "outcome"},
	)
	RetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "autofarm_retries_total", Help: "Retry attempts by step name"},
		[]string{"step"},
	)
	WalletsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "autofarm_wallets_total", Help: "Completed wallet pipeline runs by outcome"},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(StepsTotal, RetriesTotal, WalletsTotal)
}

// Step records one finished step execution.
func Step(category string, ok bool) {
	outcome := "fail"
	if ok {
		outcome = "ok"
	}
	StepsTotal.WithLabelValues(category, outcome).Inc()
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
