package services

import (
	"context"
	"fmt"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// ProfileField is the résumé field a recognized label is bucketed into.
type ProfileField int

const (
	FieldName ProfileField = iota + 1
	FieldContact
	FieldSkills
	FieldEducation
	FieldExperience
)

// LabelMapping routes recognizer labels to profile fields. Labels absent from
// the mapping are ignored.
type LabelMapping map[string]ProfileField

// DefaultLabelMapping returns a fresh copy of the standard label routing.
func DefaultLabelMapping() LabelMapping {
	return LabelMapping{
		LabelPerson:    FieldName,
		LabelEmail:     FieldContact,
		LabelPhone:     FieldContact,
		LabelOrg:       FieldEducation,
		LabelEducation: FieldEducation,
		LabelDate:      FieldExperience,
		LabelSkill:     FieldSkills,
	}
}

// NamePolicy decides which PERSON span becomes the profile name.
type NamePolicy string

const (
	NameLastWins   NamePolicy = "last-wins"
	NameFirstWins  NamePolicy = "first-wins"
	NameCollectAll NamePolicy = "collect-all"
)

func ParseNamePolicy(s string) (NamePolicy, error) {
	switch p := NamePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return NameLastWins, nil
	case NameLastWins, NameFirstWins, NameCollectAll:
		return p, nil
	default:
		return "", fmt.Errorf("unknown name policy %q", s)
	}
}

type EntityExtractor interface {
	Extract(ctx context.Context, text string) (models.ExtractedProfile, error)
}

type entityExtractor struct {
	recognizer Recognizer
	mapping    LabelMapping
	namePolicy NamePolicy
}

// NewEntityExtractor copies mapping so later changes by the caller have no
// effect. A nil mapping selects DefaultLabelMapping.
func NewEntityExtractor(recognizer Recognizer, mapping LabelMapping, namePolicy NamePolicy) EntityExtractor {
	if mapping == nil {
		mapping = DefaultLabelMapping()
	}
	owned := make(LabelMapping, len(mapping))
	for label, field := range mapping {
		owned[strings.ToUpper(label)] = field
	}
	if namePolicy == "" {
		namePolicy = NameLastWins
	}

	return &entityExtractor{
		recognizer: recognizer,
		mapping:    owned,
		namePolicy: namePolicy,
	}
}

// Extract implements EntityExtractor.
func (e *entityExtractor) Extract(ctx context.Context, text string) (models.ExtractedProfile, error) {
	entities, err := e.recognizer.Recognize(ctx, text)
	if err != nil {
		return models.ExtractedProfile{}, fmt.Errorf("%w: %v", ErrRecognition, err)
	}

	return e.bucket(entities), nil
}

func (e *entityExtractor) bucket(entities []Entity) models.ExtractedProfile {
	var (
		names      []string
		contacts   []string
		skills     []string
		education  = []string{}
		experience = []string{}
		seenSkill  = make(map[string]bool)
	)

	for _, ent := range entities {
		span := strings.TrimSpace(ent.Text)
		if span == "" {
			continue
		}

		switch e.mapping[strings.ToUpper(ent.Label)] {
		case FieldName:
			names = append(names, span)
		case FieldContact:
			contacts = append(contacts, span)
		case FieldSkills:
			key := strings.ToLower(span)
			if !seenSkill[key] {
				seenSkill[key] = true
				skills = append(skills, span)
			}
		case FieldEducation:
			education = append(education, span)
		case FieldExperience:
			experience = append(experience, span)
		}
	}

	profile := models.ExtractedProfile{
		Name:       e.pickName(names),
		Skills:     skills,
		Education:  education,
		Experience: experience,
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if len(contacts) > 0 {
		contact := strings.Join(contacts, " ")
		profile.Contact = &contact
	}

	return profile
}

func (e *entityExtractor) pickName(names []string) *string {
	if len(names) == 0 {
		return nil
	}

	var name string
	switch e.namePolicy {
	case NameFirstWins:
		name = names[0]
	case NameCollectAll:
		seen := make(map[string]bool, len(names))
		distinct := make([]string, 0, len(names))
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				distinct = append(distinct, n)
			}
		}
		name = strings.Join(distinct, ", ")
	default:
		name = names[len(names)-1]
	}

	return &name
}
