// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CompletionService: Text completion for classification, fact-checking
//     and answer composition
//   - EmbeddingService: Generates vector embeddings for queries and chunks
//   - VectorIndex: Similarity search with metadata filtering
//   - Ingestor: Extracts evidence records from one document type
//
// # Optional Interfaces
//
//   - PromptStore: User-editable prompt templates; services fall back to
//     embedded defaults when nil
//   - IndexPersister: Snapshot persistence for the vector index
//   - ConfigStore: Persistent key-value configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or ingestor package
package driven
