// Package http implements the server's HTTP surface: the catalog version
// probe, the delta-sync endpoint, signed asset URL issuance, the
// content-management write path, and the Prometheus metrics endpoint,
// together with the trace-ID, logging, and identity middleware.
package http
