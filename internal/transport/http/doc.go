// Package http implements the HTTP request handlers for the water utility
// analytics service. It is a thin layer between transport and business
// logic: handlers parse requests, delegate to the service layer, and format
// responses.
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → Service
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// # Handler Structure
//
// Each handler follows this pattern:
//
//	func (h *Handler) HandleSomething(w http.ResponseWriter, r *http.Request) {
//	    // 1. Parse and validate request
//	    // 2. Call service layer
//	    // 3. Render JSON or map the error to a problem response
//	}
//
// # Error Handling
//
// All errors follow RFC 7807 Problem Details:
//
//	{
//	    "type": "/errors/parameter/not-found",
//	    "title": "Parameter Not Found",
//	    "status": 404,
//	    "detail": "unknown parameter: \"ETP (XYZ)\"",
//	    "instance": "/api/quality/compliance"
//	}
//
// Service sentinel errors (no dataset loaded, unknown parameter, parse
// failures) are mapped through errors.MapServiceError so every handler
// produces the same problem shape for the same failure.
package http
