// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TextStore: Reads raw text and writes clean/sentence artifacts atomically
//   - TextPipeline / TextPass: Ordered normalisation passes
//   - Segmenter: Sentence segmentation
//   - GazetteFinder: Dated file discovery
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LedgerStore: Processing ledger. Without it every batch run reprocesses everything.
//   - GazetteWatcher: Watch mode.
//   - CatalogReader / ExtractorRegistry: Tabular ingestion variant.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
