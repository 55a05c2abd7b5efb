// Package driving defines the interfaces through which the outside
// world invokes the core (primary/inbound ports).
//
// The CLI adapter depends on these interfaces; core services
// implement them.
//
//   - Pipeline: Runs one query through the five-stage answer pipeline
//   - IngestService: Builds and publishes index snapshots
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
