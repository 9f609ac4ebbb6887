package services

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// proseModel wraps the tagger and entity classifier bundled with prose. The
// weights are decoded once and only read afterwards.
type proseModel struct {
	model *prose.Model
}

// LoadProseModel decodes prose's pre-trained named-entity model. Any failure
// is reported as ErrModelUnavailable.
func LoadProseModel() (m EntityModel, err error) {
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("failed to load prose model (%v): %w", r, ErrModelUnavailable)
		}
	}()

	doc, err := prose.NewDocument("Ada Lovelace worked in London.")
	if err != nil {
		return nil, fmt.Errorf("failed to load prose model: %v: %w", err, ErrModelUnavailable)
	}
	if doc.Model == nil {
		return nil, fmt.Errorf("prose returned no model: %w", ErrModelUnavailable)
	}

	return &proseModel{model: doc.Model}, nil
}

// Entities implements EntityModel.
func (p *proseModel) Entities(text string) (entities []Entity, err error) {
	defer func() {
		if r := recover(); r != nil {
			entities = nil
			err = fmt.Errorf("prose panicked: %v", r)
		}
	}()

	doc, err := prose.NewDocument(text, prose.UsingModel(p.model))
	if err != nil {
		return nil, err
	}

	found := doc.Entities()
	entities = make([]Entity, 0, len(found))
	for _, ent := range found {
		entities = append(entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	return entities, nil
}
