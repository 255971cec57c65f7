package driven

// TextNormaliser turns raw OCR text into sentences. Hyphenated line
// wraps are repaired before segmentation and every sentence has its
// interior line breaks replaced with spaces.
type TextNormaliser interface {
	Normalise(text string) []string
}
