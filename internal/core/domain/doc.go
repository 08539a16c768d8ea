// Package domain defines the core business entities for gazette preparation.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: Raw gazette text read from disk
//   - CleanDocument: Gazette text after normalisation
//   - SentenceSet: Ordered sentences segmented from a clean document
//   - GazetteFile: A discovered file and its directory date
//   - LedgerEntry: A persisted record of one processed gazette
//   - AppSettings: Pipeline, output, discovery and batch configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
