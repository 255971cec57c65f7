package domain

// MatchKind discriminates the variants of Match.
type MatchKind int

// Match kinds.
const (
	// MatchDate is a sentence containing a calendar date.
	MatchDate MatchKind = iota + 1

	// MatchKeyword is a sentence containing a configured keyword.
	MatchKeyword
)

// String returns the string representation.
func (k MatchKind) String() string {
	switch k {
	case MatchDate:
		return "date"
	case MatchKeyword:
		return "keyword"
	default:
		return unknownDescription
	}
}

// Match is a tagged hit produced by the scanner. Value holds the matched
// date string for MatchDate and the configured keyword for MatchKeyword.
// Matches are values and are never mutated after construction.
type Match struct {
	Kind     MatchKind
	Sentence string
	Value    string
}

// NewDateMatch returns a date match.
func NewDateMatch(sentence, date string) Match {
	return Match{Kind: MatchDate, Sentence: sentence, Value: date}
}

// NewKeywordMatch returns a keyword match.
func NewKeywordMatch(sentence, keyword string) Match {
	return Match{Kind: MatchKeyword, Sentence: sentence, Value: keyword}
}

// IsDate reports whether m is a date match.
func (m Match) IsDate() bool { return m.Kind == MatchDate }

// IsKeyword reports whether m is a keyword match.
func (m Match) IsKeyword() bool { return m.Kind == MatchKeyword }
