// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Pipeline Interfaces
//
// These must be provided for extraction to function:
//
//   - DocumentAssembler: Merges PDF fragments into one document (pdfcpu)
//   - PageRasterizer: Renders pages to images (MuPDF)
//   - TextRecognizer: OCR over one page image (Tesseract)
//   - TextNormaliser: Hyphen repair and sentence segmentation
//
// # Collaborator Interfaces
//
//   - DocumentSource: Obtains the fragments for a table row (HTTP or local directory)
//   - DocumentStore: Persists merged documents. Optional, may be nil.
//   - TableReader: Reads CSV and XLSX input tables
//   - RecordResolver: Maps a regulator table and lookup key to rows
//   - ReportWriter: Writes output records
//   - RunStore: Run history persistence
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
