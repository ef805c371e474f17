// Package ontology rewrites class identifiers between their prefixed form
// ("ncit:C28421") and the full namespace URI used by the descriptive data.
package ontology

import (
	"strings"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
)

// DefaultPrefixes are used when the global schema does not declare its own.
// Order matters: the first matching prefix wins.
var DefaultPrefixes = []models.Prefix{
	{Name: "ncit", URI: "http://ncicb.nci.nih.gov/xml/owl/EVS/Thesaurus.owl#"},
	{Name: "sct", URI: "http://snomed.info/sct"},
}

// Table is an ordered prefix table.
type Table struct {
	prefixes []models.Prefix
}

// New builds a Table. A nil or empty list selects DefaultPrefixes.
func New(prefixes []models.Prefix) Table {
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}
	return Table{prefixes: prefixes}
}

// ForSchema returns the prefix table declared by the schema.
func ForSchema(g models.GlobalSchema) Table {
	return New(g.Prefixes)
}

// Expand replaces every "prefix:" of the first prefix that occurs in s with
// its namespace URI.
func (t Table) Expand(s string) string {
	for _, p := range t.prefixes {
		if strings.Contains(s, p.Name+":") {
			return strings.ReplaceAll(s, p.Name+":", p.URI)
		}
	}
	return s
}

// Compact is the inverse of Expand, for display.
func (t Table) Compact(s string) string {
	for _, p := range t.prefixes {
		if p.URI != "" && strings.Contains(s, p.URI) {
			return strings.ReplaceAll(s, p.URI, p.Name+":")
		}
	}
	return s
}

// ExpandSchema returns a copy of g with every class and target class expanded.
// g itself is not modified.
func (t Table) ExpandSchema(g models.GlobalSchema) models.GlobalSchema {
	out := models.GlobalSchema{
		Variables: make([]models.Variable, len(g.Variables)),
		Prefixes:  g.Prefixes,
	}
	for i, v := range g.Variables {
		values := make([]models.ValueTerm, len(v.Values))
		for j, term := range v.Values {
			values[j] = models.ValueTerm{Name: term.Name, TargetClass: t.Expand(term.TargetClass)}
		}
		out.Variables[i] = models.Variable{Name: v.Name, Class: t.Expand(v.Class), Values: values}
	}
	return out
}
