// Package mupdf renders PDF pages to images through MuPDF (go-fitz).
// It implements the driven.PageRasterizer interface.
//
// Build requires:
//   - CGO enabled (go-fitz links a bundled static MuPDF)
//
// Without CGO the package compiles to a stub whose Open returns
// domain.ErrEngineUnavailable.
package mupdf
