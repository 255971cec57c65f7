// Package ocrtext normalises Tesseract output into sentences.
package ocrtext

import (
	"strings"

	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.TextNormaliser = (*Normaliser)(nil)

// SentenceSeparator is the literal boundary between sentences. It is not
// abbreviation-aware: "U.S. Bank" splits after "U.S.".
const SentenceSeparator = ". "

// Normaliser repairs line-wrap hyphenation and splits text into sentences.
type Normaliser struct{}

// New creates a new OCR text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise repairs hyphenation, segments the text and replaces line
// breaks left inside each sentence with a single space. Order is kept and
// nothing is deduplicated. A blank page yields no sentences.
func (n *Normaliser) Normalise(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	sentences := Segment(RepairHyphenation(text))
	for i, s := range sentences {
		sentences[i] = strings.ReplaceAll(s, "\n", " ")
	}
	return sentences
}

// RepairHyphenation removes every hyphen that ends a line together with
// the line break, rejoining the word split across lines. It runs to a
// fixed point, so applying it twice gives the same result as once.
func RepairHyphenation(text string) string {
	for strings.Contains(text, "-\n") {
		text = strings.ReplaceAll(text, "-\n", "")
	}
	return text
}

// Segment splits text on SentenceSeparator. Joining the result with the
// separator reproduces text exactly.
func Segment(text string) []string {
	return strings.Split(text, SentenceSeparator)
}
