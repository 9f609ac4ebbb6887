package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Entity labels produced by the recognizers.
const (
	LabelPerson    = "PERSON"
	LabelEmail     = "EMAIL"
	LabelPhone     = "PHONE"
	LabelOrg       = "ORG"
	LabelEducation = "EDUCATION"
	LabelDate      = "DATE"
	LabelSkill     = "SKILL"
)

// Entity is a labelled span of text found by a Recognizer.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Recognizer detects labelled spans in text. Implementations are loaded once
// and must not mutate state while recognizing.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// EntityModel is a pre-trained named-entity model. It returns the spans it
// labels in text order.
type EntityModel interface {
	Entities(text string) ([]Entity, error)
}

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\(?\d{1,4}\)?(?:[\s.\-]?\(?\d{2,4}\)?){2,4}\d`)

	monthNames  = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`
	datePoint   = `(?:` + monthNames + `\.?\s+(?:19|20)\d{2}|(?:0?[1-9]|1[0-2])/(?:19|20)\d{2}|(?:19|20)\d{2})`
	datePattern = regexp.MustCompile(`\b` + datePoint + `(?:\s*(?:-|–|—|to)\s*(?:` + datePoint + `|[Pp]resent|[Cc]urrent|[Nn]ow))?\b`)
)

// ModelRecognizer labels PERSON, ORG and the other named entities with a
// pre-trained model, and EMAIL, PHONE and DATE spans with compiled patterns.
// Pattern spans win where the two overlap.
type ModelRecognizer struct {
	model EntityModel
}

func NewModelRecognizer(model EntityModel) *ModelRecognizer {
	return &ModelRecognizer{model: model}
}

// Recognize implements Recognizer. Entities are returned in text order.
func (r *ModelRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spans := newSpanSet(text)
	spans.claimPatterns()

	if strings.TrimSpace(text) == "" {
		return spans.entities(), nil
	}

	found, err := r.model.Entities(text)
	if err != nil {
		return nil, fmt.Errorf("entity model failed: %w", err)
	}

	cursor := 0
	for _, ent := range found {
		label := strings.ToUpper(strings.TrimSpace(ent.Label))
		span := strings.TrimSpace(ent.Text)
		if span == "" || label == "" {
			continue
		}

		offset := strings.Index(text[cursor:], span)
		if offset < 0 {
			// The model rebuilt the span from tokens and it no longer appears
			// verbatim; keep it after the previous span.
			spans.add(cursor, Entity{Text: span, Label: label})
			continue
		}

		start := cursor + offset
		spans.claim(start, start+len(span), label)
		cursor = start + len(span)
	}

	return spans.entities(), nil
}

type positionedEntity struct {
	Entity
	start int
}

// spanSet collects entities over text without letting two of them share a
// byte.
type spanSet struct {
	text  string
	taken []bool
	found []positionedEntity
}

func newSpanSet(text string) *spanSet {
	return &spanSet{text: text, taken: make([]bool, len(text))}
}

func (s *spanSet) claim(start, end int, label string) bool {
	for start < end && s.text[start] == ' ' {
		start++
	}
	for end > start && s.text[end-1] == ' ' {
		end--
	}
	if start == end {
		return false
	}
	for i := start; i < end; i++ {
		if s.taken[i] {
			return false
		}
	}
	for i := start; i < end; i++ {
		s.taken[i] = true
	}

	s.add(start, Entity{Text: s.text[start:end], Label: label})
	return true
}

func (s *spanSet) add(start int, ent Entity) {
	s.found = append(s.found, positionedEntity{Entity: ent, start: start})
}

// claimPatterns labels emails first so their digits are not read as phones or
// dates, then dates, then phones with at least seven digits.
func (s *spanSet) claimPatterns() {
	for _, loc := range emailPattern.FindAllStringIndex(s.text, -1) {
		s.claim(loc[0], loc[1], LabelEmail)
	}
	for _, loc := range datePattern.FindAllStringIndex(s.text, -1) {
		s.claim(loc[0], loc[1], LabelDate)
	}
	for _, loc := range phonePattern.FindAllStringIndex(s.text, -1) {
		if digitCount(s.text[loc[0]:loc[1]]) >= 7 {
			s.claim(loc[0], loc[1], LabelPhone)
		}
	}
}

func (s *spanSet) entities() []Entity {
	sort.SliceStable(s.found, func(i, j int) bool { return s.found[i].start < s.found[j].start })

	entities := make([]Entity, 0, len(s.found))
	for _, e := range s.found {
		entities = append(entities, e.Entity)
	}
	return entities
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
