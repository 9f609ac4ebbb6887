package services

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultSkills is the vocabulary used when none is configured.
var DefaultSkills = []string{"Python", "Machine Learning", "Data Analysis", "Power BI", "SQL"}

// SkillVocabulary is a read-only set of skill terms. Terms that tokenize to
// the same sequence, ignoring case, are one term; the first spelling is kept.
type SkillVocabulary struct {
	terms []string
}

func NewSkillVocabulary(terms []string) SkillVocabulary {
	seen := make(map[string]bool, len(terms))
	owned := make([]string, 0, len(terms))
	for _, term := range terms {
		term = Normalize(term)
		key := termKey(term)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		owned = append(owned, term)
	}

	return SkillVocabulary{terms: owned}
}

// termKey is the lowercased token sequence of term. Matching compares tokens,
// so two terms with the same key always match the same text.
func termKey(term string) string {
	tokens := tokenize(term)
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.lower
	}
	return strings.Join(parts, " ")
}

// ParseSkillVocabulary builds a vocabulary from a comma-separated list.
func ParseSkillVocabulary(list string) SkillVocabulary {
	return NewSkillVocabulary(strings.Split(list, ","))
}

// Terms returns a copy of the vocabulary terms.
func (v SkillVocabulary) Terms() []string {
	return append([]string(nil), v.terms...)
}

func (v SkillVocabulary) Len() int {
	return len(v.terms)
}

type SkillMatcher interface {
	Match(text string, vocab SkillVocabulary) []string
}

type skillMatcher struct{}

func NewSkillMatcher() SkillMatcher {
	return &skillMatcher{}
}

type token struct {
	lower      string
	start, end int
}

// Match implements SkillMatcher. A term matches when its tokens appear as a
// contiguous run of whole tokens in text, ignoring case. For every matched
// term the literal text of its first occurrence is returned. The result is
// sorted, so vocabulary order never changes it.
func (m *skillMatcher) Match(text string, vocab SkillVocabulary) []string {
	textTokens := tokenize(text)

	byFirst := make(map[string][]int, len(textTokens))
	for i, tok := range textTokens {
		byFirst[tok.lower] = append(byFirst[tok.lower], i)
	}

	found := make(map[string]string)
	for _, term := range vocab.terms {
		termTokens := tokenize(term)
		if len(termTokens) == 0 {
			continue
		}

	positions:
		for _, i := range byFirst[termTokens[0].lower] {
			if i+len(termTokens) > len(textTokens) {
				continue
			}
			for j := 1; j < len(termTokens); j++ {
				if textTokens[i+j].lower != termTokens[j].lower {
					continue positions
				}
			}
			literal := text[textTokens[i].start:textTokens[i+len(termTokens)-1].end]
			found[termKey(term)] = literal
			break
		}
	}

	matched := make([]string, 0, len(found))
	for _, literal := range found {
		matched = append(matched, literal)
	}
	sort.Slice(matched, func(i, j int) bool {
		return strings.ToLower(matched[i]) < strings.ToLower(matched[j])
	})

	return matched
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.'
}

// tokenize splits text into runs of letters, digits, '+', '#' and inner dots,
// so "C++", "C#" and "Node.js" survive as single tokens.
func tokenize(text string) []token {
	var tokens []token
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		s, e := start, end
		for s < e && text[s] == '.' {
			s++
		}
		for e > s && text[e-1] == '.' {
			e--
		}
		if s < e {
			tokens = append(tokens, token{lower: strings.ToLower(text[s:e]), start: s, end: e})
		}
		start = -1
	}

	for i, r := range text {
		if isTokenRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))

	return tokens
}
