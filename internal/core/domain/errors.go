package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown regulator or table format.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEngineUnavailable indicates a native engine (MuPDF, Tesseract)
	// was not compiled into this binary.
	ErrEngineUnavailable = errors.New("engine unavailable")

	// ErrFetch indicates a remote document could not be retrieved.
	ErrFetch = errors.New("fetch failed")

	// ErrRateLimited indicates the remote server answered 429.
	ErrRateLimited = errors.New("rate limited")

	// Pipeline Errors.

	// ErrAssembly indicates PDF fragments could not be combined.
	ErrAssembly = errors.New("document assembly failed")

	// ErrRasterization indicates a document or page could not be rendered.
	ErrRasterization = errors.New("rasterization failed")

	// ErrRecognition indicates the OCR engine failed on a page.
	ErrRecognition = errors.New("text recognition failed")

	// ErrDateParse indicates a matched date string is not a calendar date.
	ErrDateParse = errors.New("date parse failed")
)

// AssemblyError reports a document whose fragments could not be merged.
type AssemblyError struct {
	RecordID string
	// Fragment is the 0-based index of the offending fragment, or -1 when
	// the failure is not tied to a single fragment.
	Fragment int
	Err      error
}

func (e *AssemblyError) Error() string {
	if e.Fragment >= 0 {
		return fmt.Sprintf("assemble %s: fragment %d: %v", e.RecordID, e.Fragment, e.Err)
	}
	return fmt.Sprintf("assemble %s: %v", e.RecordID, e.Err)
}

func (e *AssemblyError) Unwrap() error { return e.Err }

// Is reports whether target is ErrAssembly.
func (e *AssemblyError) Is(target error) bool { return target == ErrAssembly }

// RasterizationError reports a document or page that could not be rendered.
// Page is 0 when the document itself could not be opened.
type RasterizationError struct {
	RecordID string
	Page     int
	Err      error
}

func (e *RasterizationError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("rasterize %s: page %d: %v", e.RecordID, e.Page, e.Err)
	}
	return fmt.Sprintf("rasterize %s: %v", e.RecordID, e.Err)
}

func (e *RasterizationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrRasterization.
func (e *RasterizationError) Is(target error) bool { return target == ErrRasterization }

// RecognitionError reports an OCR engine failure on one page.
type RecognitionError struct {
	RecordID string
	Page     int
	Err      error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("recognise %s: page %d: %v", e.RecordID, e.Page, e.Err)
}

func (e *RecognitionError) Unwrap() error { return e.Err }

// Is reports whether target is ErrRecognition.
func (e *RecognitionError) Is(target error) bool { return target == ErrRecognition }

// DateParseError reports a date-shaped string that is not a valid date,
// e.g. "February 30, 2015". It affects only the match it was raised for.
type DateParseError struct {
	RecordID string
	Value    string
	Err      error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parse date %q in %s: %v", e.Value, e.RecordID, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDateParse.
func (e *DateParseError) Is(target error) bool { return target == ErrDateParse }
