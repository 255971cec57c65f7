// Package domain defines the core business entities for regscan.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceDocument: One or more PDF fragments making up one enforcement action
//   - PageImage: A rasterized page handed to OCR
//   - Match: A date or keyword hit inside a sentence
//   - FilterCriteria: The date range and keywords applied to matches
//   - OutputRecord: One row of the final report
//   - Run: A persisted batch execution
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
