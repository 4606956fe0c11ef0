package xmlnav

import (
	"slices"

	"github.com/beevik/etree"

	"github.com/agentic-research/atlas"
)

// ElementCompass enumerates the child elements of an *etree.Element,
// indexing repeated tags by occurrence. With tags given, only those tags
// are read.
type ElementCompass struct {
	tags []string
}

// NewElementCompass returns a compass over element trees, optionally
// restricted to the named tags.
func NewElementCompass(tags ...string) *ElementCompass {
	return &ElementCompass{tags: tags}
}

func (c *ElementCompass) Navigable(target any) bool {
	_, ok := target.(*etree.Element)
	return ok
}

func (c *ElementCompass) Readings(target any) ([]atlas.Reading, error) {
	el, ok := target.(*etree.Element)
	if !ok {
		return nil, &atlas.UnnavigableError{Target: target}
	}
	counts := map[string]int{}
	var out []atlas.Reading
	for _, child := range el.ChildElements() {
		i := counts[child.Tag]
		counts[child.Tag]++
		if len(c.tags) > 0 && !slices.Contains(c.tags, child.Tag) {
			continue
		}
		out = append(out, atlas.Reading{
			Accessor: Elem{name: ElemName{Tag: child.Tag, Index: i}},
			Value:    child,
		})
	}
	return out, nil
}

// NewSurveyor returns a surveyor that reads element trees ahead of plain
// values and binds charted paths to the element grammar.
func NewSurveyor(opts ...atlas.SurveyorOption) *atlas.Surveyor {
	base := []atlas.SurveyorOption{
		atlas.WithExtraCompasses(NewElementCompass()),
		atlas.WithGrammar(Grammar),
	}
	return atlas.NewSurveyor(append(base, opts...)...)
}
