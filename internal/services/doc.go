// Package services implements the business logic layer between HTTP
// handlers and the parsing/analytics packages.
//
// # Architecture
//
// Services follow these architectural principles:
//
//  1. Context propagation for cancellation and tracing
//  2. Dependency injection for loose coupling
//  3. Immutable dataset snapshots swapped atomically on reload
//  4. Domain-focused methods that encapsulate business rules
//
// # Available Services
//
//   - AnalyticsService: owns the loaded dataset and runs every engine
//     operation (rollups, compliance, breach events, correlation,
//     anomaly detection) plus structured action dispatch
//   - HealthService: provides system and dataset health checks
//
// # Error Handling
//
// Services return domain-specific sentinel errors that handlers map to
// RFC 7807 problem responses:
//
//   - ErrNoData before the first successful ingest
//   - ErrUnknownParameter for parameters absent from the quality series
//   - ErrUnknownAction and ErrNoOperation for action dispatch
package services
