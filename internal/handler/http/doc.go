// Package http implements the REST transport of the backup escrow server.
//
// It exposes the vault backup routes under /api/profile, the server version
// and the prometheus scrape endpoint. Bearer authentication, request
// tracing, access logging, compression and body signature checks are
// handled here before requests reach the service layer.
package http
