package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// datePattern matches "<Month> <day>, <year>". Month names are
// case-sensitive; whitespace may include line breaks left by OCR.
var datePattern = regexp.MustCompile(
	`(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}`,
)

// Scanner finds key information in sentences.
type Scanner struct{}

// NewScanner creates a scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan returns the matches of every sentence, in sentence order.
func (s *Scanner) Scan(sentences, keywords []string) []domain.Match {
	lowered := lowerAll(keywords)
	var matches []domain.Match
	for _, sentence := range sentences {
		matches = s.scanSentence(matches, sentence, keywords, lowered)
	}
	return matches
}

// ScanSentence returns the matches of a single sentence: at most one date
// match followed by one keyword match per matching keyword, in keyword order.
func (s *Scanner) ScanSentence(sentence string, keywords []string) []domain.Match {
	return s.scanSentence(nil, sentence, keywords, lowerAll(keywords))
}

func (s *Scanner) scanSentence(dst []domain.Match, sentence string, keywords, lowered []string) []domain.Match {
	// Only the first date in a sentence is reported.
	if date := datePattern.FindString(sentence); date != "" {
		dst = append(dst, domain.NewDateMatch(sentence, collapseSpace(date)))
	}

	if len(keywords) == 0 {
		return dst
	}
	lowerSentence := strings.ToLower(sentence)
	for i, kw := range lowered {
		if strings.Contains(lowerSentence, kw) {
			dst = append(dst, domain.NewKeywordMatch(sentence, keywords[i]))
		}
	}
	return dst
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
