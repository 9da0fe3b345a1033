package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK   = "ok"
	ResultFail = "fail"
)

var (
	ScanAdjust = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scan_adjust_total",
			Help: "Stock adjustments driven by barcode scans",
		},
		[]string{"result"},
	)
	ScanConflictRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scan_conflict_retries_total",
			Help: "Conditional decrements that lost the race and were retried",
		},
	)
	RequestApprove = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "request_approve_total",
			Help: "Purchase request approvals",
		},
		[]string{"result"},
	)
	NotifySend = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_send_total",
			Help: "Approval notification dispatches",
		},
		[]string{"result"},
	)
	RealtimeEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realtime_events_total",
			Help: "Diff events emitted to realtime subscribers",
		},
		[]string{"collection"},
	)
)
