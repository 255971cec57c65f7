// Package tesseract recognises text in page images through Tesseract
// (gosseract). It implements the driven.TextRecognizer interface.
//
// Build requires:
//   - CGO enabled
//   - libtesseract and libleptonica headers and libraries
//   - tessdata for the configured language (default "eng")
//
// Without CGO the package compiles to a stub whose Recognize returns
// domain.ErrEngineUnavailable.
package tesseract
