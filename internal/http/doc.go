// Package http provides HTTP handlers for the embed widget REST API.
//
// This package implements all HTTP endpoints using the Gin framework.
//
// Endpoints:
//   - Health: / and /health
//   - Widgets: /widgets, /widgets/slots
//   - Product: /product/resolve
//   - Cache: /cache/clear, /stats
//
// Example Usage:
//
//	handlers := http.NewHandlers(cacheManager)
//	router.GET("/health", handlers.Health)
//	router.GET("/widgets", handlers.GetWidgets)
package http
