// Package metrics exposes the server's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sharelist",
		Name:      "connected_clients",
		Help:      "Number of WebSocket sessions currently attached.",
	})

	TenantsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sharelist",
		Name:      "tenants_active",
		Help:      "Number of tenants materialized in this process.",
	})

	TogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sharelist",
		Name:      "toggles_total",
		Help:      "Item toggles processed, by tenant.",
	}, []string{"tenant"})

	BroadcastsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sharelist",
		Name:      "broadcasts_total",
		Help:      "Update frames fanned out, by tenant.",
	}, []string{"tenant"})

	PersistFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sharelist",
		Name:      "persist_failures_total",
		Help:      "Snapshot writes that failed and closed a session.",
	})
)
