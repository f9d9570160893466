// Package models defines request and response types for the HydraZone REST API.
// Zone and RRset shapes follow the PowerDNS HTTP API.
package models

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a simple status response.
type StatusResponse struct {
	Status string `json:"status"`
}
