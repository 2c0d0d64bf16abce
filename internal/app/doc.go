// Package app provides application initialization and lifecycle management
// for the water utility analytics service. It wires configuration, logging,
// observability, the analytics services and the HTTP transport together, and
// handles graceful shutdown.
//
// # Initialization Flow
//
//  1. Load configuration from environment and files
//  2. Initialize logging and OpenTelemetry metrics
//  3. Create the analytics, report and health services
//  4. Preload the configured exports when present
//  5. Set up the chi router and middleware chain
//  6. Configure and start the HTTP server
//
// # Usage
//
//	app, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := app.Run(); err != nil {
//	    log.Fatal(err)
//	}
package app
