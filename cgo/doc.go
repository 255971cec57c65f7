// Package cgo provides CGO bindings for native libraries.
// This package isolates all CGO code from the pure Go core.
//
// Sub-packages:
//   - mupdf: MuPDF page rendering (go-fitz)
//   - tesseract: Tesseract OCR (gosseract)
//
// Each sub-package has a !cgo stub so the rest of the module builds with
// CGO_ENABLED=0; the stubs report domain.ErrEngineUnavailable.
package cgo
