// Package server runs the escrow HTTP server.
//
// It owns startup, signal handling and graceful shutdown; routing lives in
// internal/handler/http.
package server
