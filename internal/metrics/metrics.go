package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	TransactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_total",
			Help: "Total committed ledger transactions",
		},
		[]string{"type"},
	)

	ApprovalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approvals_total",
			Help: "Total admin approval-gate decisions",
		},
		[]string{"entity", "decision"}, // transfer|deposit|withdrawal|card|kyc x approved|declined|reversed
	)

	TransfersFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "transfers_failed_total",
			Help: "Total rejected transfer requests",
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	WebhooksSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhooks_sent_total",
			Help: "Total webhook delivery attempts",
		},
		[]string{"outcome"}, // ok|retry|failed
	)
)

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(TransactionsTotal)
	prometheus.MustRegister(ApprovalsTotal)
	prometheus.MustRegister(TransfersFailed)
	prometheus.MustRegister(WorkerQueueDepth)
	prometheus.MustRegister(WebhooksSent)
}
