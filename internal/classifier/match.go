// Package classifier implements the relevance and classification engine for
// civic complaint posts. match.go provides the keyword scoring primitive:
// an Aho-Corasick pass finds candidate keywords in a single scan, then each
// candidate is confirmed and counted with a word-boundary regex.
package classifier

import (
	"regexp"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Phrase keywords are stronger signals than single words.
const (
	singleWordWeight = 1
	phraseWeight     = 2
)

// KeywordSet scores text against a fixed set of keywords. Matching is
// case-insensitive and whole-word; each occurrence of a single-word keyword
// adds 1, each occurrence of a multi-word phrase adds 2. Occurrences of one
// keyword never overlap with themselves, so no occurrence is double-counted.
type KeywordSet struct {
	keywords []string
	patterns []*regexp.Regexp
	weights  []int
	matcher  *ahocorasick.Matcher
}

// NewKeywordSet compiles a keyword set. Keywords are normalized to lower
// case; regex metacharacters in keywords are escaped.
func NewKeywordSet(keywords []string) *KeywordSet {
	set := &KeywordSet{
		keywords: make([]string, 0, len(keywords)),
		patterns: make([]*regexp.Regexp, 0, len(keywords)),
		weights:  make([]int, 0, len(keywords)),
	}

	for _, kw := range keywords {
		normalized := strings.ToLower(strings.TrimSpace(kw))
		if normalized == "" {
			continue
		}
		set.keywords = append(set.keywords, normalized)
		set.patterns = append(set.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(normalized)+`\b`))
		if strings.ContainsRune(normalized, ' ') {
			set.weights = append(set.weights, phraseWeight)
		} else {
			set.weights = append(set.weights, singleWordWeight)
		}
	}

	if len(set.keywords) > 0 {
		set.matcher = ahocorasick.NewStringMatcher(set.keywords)
	}

	return set
}

// Score returns the weighted whole-word match score of text against the set.
// The input must already be lower-cased (the engine lower-cases once for all
// sets rather than per call).
func (s *KeywordSet) Score(text string) int {
	if s.matcher == nil || text == "" {
		return 0
	}

	// Candidate pass: which keywords appear as substrings at all.
	hits := s.matcher.Match([]byte(text))

	score := 0
	for _, idx := range hits {
		if idx >= len(s.patterns) {
			continue
		}
		// Confirm with whole-word semantics and count occurrences.
		// FindAllStringIndex returns non-overlapping matches only.
		occurrences := len(s.patterns[idx].FindAllStringIndex(text, -1))
		score += occurrences * s.weights[idx]
	}

	return score
}

// Size returns the number of compiled keywords.
func (s *KeywordSet) Size() int {
	return len(s.keywords)
}
