package app

import "encoding/json"

// Response is one element of the output array (spec.md §6): always carries
// request_id, and either a payload or an error_message. Built as one
// discriminated struct with omitempty fields rather than a type hierarchy,
// per spec.md §9's "Polymorphism of requests and responses" design note —
// the core dispatches by a Go switch, never by embedded virtual methods.
type Response struct {
	RequestID int `json:"request_id"`

	ErrorMessage string `json:"error_message,omitempty"`

	// Bus query payload.
	StopCount       int     `json:"stop_count,omitempty"`
	UniqueStopCount int     `json:"unique_stop_count,omitempty"`
	RouteLength     float64 `json:"route_length,omitempty"`
	Curvature       float64 `json:"curvature,omitempty"`

	// Stop query payload.
	Buses []string `json:"buses,omitempty"`

	// Route query payload. TotalTime is a pointer so a route with weight
	// exactly 0 (from == to) still marshals "total_time":0 instead of being
	// omitted like a genuinely absent field on non-Route responses.
	TotalTime *float64    `json:"total_time,omitempty"`
	Items     []RouteItem `json:"items,omitempty"`

	// Route/Map query payload.
	Map string `json:"map,omitempty"`
}

// RouteItem is one alternating Wait/Bus entry of a Route response
// (spec.md §6).
type RouteItem struct {
	Type      string  `json:"type"`
	StopName  string  `json:"stop_name,omitempty"`
	Bus       string  `json:"bus,omitempty"`
	Time      float64 `json:"time"`
	SpanCount int     `json:"span_count,omitempty"`
}

// notFound builds the {"error_message": "not found"} payload spec.md §4.6
// and §6 require for unknown stops/buses and unroutable pairs.
func notFound(requestID int) Response {
	return Response{RequestID: requestID, ErrorMessage: "not found"}
}

// MarshalResponses encodes the output array in request order.
func MarshalResponses(responses []Response) ([]byte, error) {
	return json.Marshal(responses)
}
