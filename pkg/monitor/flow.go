package monitor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FlowMetrics 定义交易流程的业务指标
type FlowMetrics struct {
	FeeQuotesTotal      *prometheus.CounterVec
	FeeQuoteDuration    *prometheus.HistogramVec
	WrappedTxTotal      *prometheus.CounterVec
	StepTransitions     *prometheus.CounterVec
	StaleResultsDropped *prometheus.CounterVec
	SubmissionsTotal    *prometheus.CounterVec
}

// Flow 为 nil 时所有记录函数都是空操作 (未调用 Init 的 CLI 与测试)
var Flow *FlowMetrics

// InitFlowMetrics 初始化业务指标
func InitFlowMetrics() {
	Flow = &FlowMetrics{
		FeeQuotesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "txflow_fee_quotes_total",
			Help: "Fee and deposit quotes by kind and status",
		}, []string{"kind", "status"}),
		FeeQuoteDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "txflow_fee_quote_duration_seconds",
			Help:    "Latency of fee oracle calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"chain"}),
		WrappedTxTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "txflow_wrapped_tx_total",
			Help: "Wrapper layers applied to transactions",
		}, []string{"kind"}),
		StepTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "txflow_flow_step_transitions_total",
			Help: "Wizard step transitions by target step",
		}, []string{"step"}),
		StaleResultsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "txflow_stale_results_dropped_total",
			Help: "Async results discarded because a newer request superseded them",
		}, []string{"kind"}),
		SubmissionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "txflow_submissions_total",
			Help: "Submissions handed to the submit service by status",
		}, []string{"status"}),
	}
}

func ObserveFeeQuote(kind, chain, status string, d time.Duration) {
	if Flow == nil {
		return
	}
	Flow.FeeQuotesTotal.WithLabelValues(kind, status).Inc()
	if kind == "fee" {
		Flow.FeeQuoteDuration.WithLabelValues(chain).Observe(d.Seconds())
	}
}

func IncWrapped(kind string) {
	if Flow == nil {
		return
	}
	Flow.WrappedTxTotal.WithLabelValues(kind).Inc()
}

func IncStep(step string) {
	if Flow == nil {
		return
	}
	Flow.StepTransitions.WithLabelValues(step).Inc()
}

func IncStale(kind string) {
	if Flow == nil {
		return
	}
	Flow.StaleResultsDropped.WithLabelValues(kind).Inc()
}

func IncSubmission(status string) {
	if Flow == nil {
		return
	}
	Flow.SubmissionsTotal.WithLabelValues(status).Inc()
}
