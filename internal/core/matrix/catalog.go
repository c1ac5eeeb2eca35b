package matrix

import (
	"github.com/auditgrid/auditgrid/internal/core/attribute"
)

// rowKey is the identity under which definitions collapse into one row.
// Definitions on different assessments sharing this identity are the same
// logical attribute; a difference in any field makes a new row.
type rowKey struct {
	title         string
	attributeType string
	mandatory     bool
	defaultValue  string
	hasDefault    bool
}

func keyFor(def *attribute.Definition) rowKey {
	key := rowKey{
		title:         def.Title,
		attributeType: def.AttributeType,
		mandatory:     def.Mandatory,
	}
	if def.DefaultValue != nil {
		key.defaultValue = *def.DefaultValue
		key.hasDefault = true
	}
	return key
}

// rowGroup accumulates one row plus the concrete definitions realizing it,
// one per contributing assessment.
type rowGroup struct {
	row  *Row
	defs []*attribute.Definition
}

// buildCatalog partitions loaded definitions into distinct rows in first-seen
// order. An assessment with no definitions contributes nothing.
func buildCatalog(defs []*attribute.Definition) []*rowGroup {
	groups := make([]*rowGroup, 0)
	byKey := make(map[rowKey]*rowGroup)

	for _, def := range defs {
		key := keyFor(def)
		group, ok := byKey[key]
		if !ok {
			group = &rowGroup{
				row: &Row{
					Title:         def.Title,
					Mandatory:     def.Mandatory,
					AttributeType: def.AttributeType,
					DefaultValue:  def.DefaultValue,
					Values:        make(map[string]*Cell),
				},
			}
			byKey[key] = group
			groups = append(groups, group)
		}
		group.defs = append(group.defs, def)
	}
	return groups
}
