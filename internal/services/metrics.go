package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opAddCustomer    = "add_customer"
	opDeleteCustomer = "delete_customer"
	opRenameCustomer = "rename_customer"
	opChangePhone    = "change_phone"
	opAddTransaction = "add_transaction"
	opUndo           = "undo"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Subsystem: "core",
		Name:      "operations_total",
		Help:      "Ledger operations partitioned by operation and outcome.",
	}, []string{"op", "status"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledger",
		Subsystem: "core",
		Name:      "operation_duration_seconds",
		Help:      "Ledger operation latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})

	undosTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Subsystem: "core",
		Name:      "undos_total",
		Help:      "Undo attempts partitioned by reverted action and outcome.",
	}, []string{"action", "status"})

	archivedLogsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Subsystem: "core",
		Name:      "archived_logs_total",
		Help:      "Action log rows moved to the archive by the retention sweep.",
	})
)

func observeOp(op string, start time.Time, err *error) {
	status := "ok"
	if *err != nil {
		status = "error"
	}
	operationsTotal.WithLabelValues(op, status).Inc()
	operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
