// Package normalisers turns raw recognised text into the units the
// scanner works on.
//
//   - ocrtext: hyphen repair and ". " sentence segmentation for OCR output
package normalisers
