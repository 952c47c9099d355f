/*
Package monitoring provides Prometheus metrics collection.

Tracked surfaces: HTTP requests, manifest fetches, cache outcomes,
bridge events, overlay rectangle publishes, and WebSocket connections.

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Time a manifest fetch
	timer := monitoring.NewFetchTimer(metrics)
	// ... perform fetch ...
	timer.Stop("success")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
