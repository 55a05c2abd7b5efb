// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The answer pipeline is a fixed five-stage sequence:
// classify, route, retrieve, reconcile, compose. Each stage appends
// one field to the per-query context and never touches earlier ones.
//
// Services are pure Go with no CGO or external dependencies.
package services
