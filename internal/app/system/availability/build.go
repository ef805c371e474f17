package availability

import (
	"fmt"
	"strings"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/ontology"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
)

// DefaultText names the population counted by the table.
const DefaultText = "AYA"

// Build assembles the availability table for the latest snapshot in data.
// ok is false when data is empty.
//
// Classes in the schema may be written with a known prefix ("ncit:...");
// they are expanded before being compared with the snapshot, whose records
// carry full URIs, and compacted again in tooltips.
func Build(schema models.GlobalSchema, data models.DescriptiveData, text string) (*Table, bool) {
	latest, ok := data.Latest()
	if !ok {
		return nil, false
	}
	if text == "" {
		text = DefaultText
	}

	prefixes := ontology.ForSchema(schema)
	expanded := prefixes.ExpandSchema(schema)
	orgs := latest.Organisations()

	t := &Table{Text: text, Organisations: orgs}

	for _, v := range expanded.Variables {
		// Records of each organisation that belong to this variable's class.
		perOrg := make([][]models.VariableCount, len(orgs))
		for i, org := range orgs {
			for _, vc := range latest[org].VariableInfo {
				if vc.MainClass == v.Class {
					perOrg[i] = append(perOrg[i], vc)
				}
			}
		}

		b := rowBuilder{text: text, orgs: orgs, prefixes: prefixes}
		b.variableRow(v, perOrg)
		for _, term := range v.Values {
			b.valueRow(v, term, perOrg)
		}
		t.Rows = append(t.Rows, b.rows...)
		t.Tooltips = append(t.Tooltips, b.tooltips...)
	}

	return t, true
}

type rowBuilder struct {
	text     string
	orgs     []string
	prefixes ontology.Table

	rows     []Row
	tooltips []Tooltip
}

// firstMatch returns the first record whose sub class equals subClass.
func firstMatch(records []models.VariableCount, subClass string) (models.VariableCount, bool) {
	for _, r := range records {
		if r.SubClass == subClass {
			return r, true
		}
	}
	return models.VariableCount{}, false
}

// variableRow counts records whose main and sub class both equal the
// variable's class: the organisation has the variable at all.
func (b *rowBuilder) variableRow(v models.Variable, perOrg [][]models.VariableCount) {
	name := label(v.Name)
	row := Row{Variable: name, VariableKey: v.Name, Counts: make([]int, len(b.orgs))}
	tip := Tooltip{
		Variables:     b.prefixes.Compact(fmt.Sprintf("__%s__  \nAssociated class: %s", name, v.Class)),
		Organisations: make([]string, len(b.orgs)),
	}

	var lines []string
	for i, org := range b.orgs {
		rec, ok := firstMatch(perOrg[i], v.Class)
		if !ok {
			tip.Organisations[i] = fmt.Sprintf("Data for __%s__ appears unavailable for %s.", spaced(v.Name), org)
			continue
		}
		row.Counts[i] = rec.MainClassCount
		row.Total += rec.MainClassCount
		lines = append(lines, fmt.Sprintf("%s: __%d__", org, rec.MainClassCount))
		tip.Organisations[i] = fmt.Sprintf("__%d__ %ss in %s have information on __%s__.",
			rec.MainClassCount, b.text, org, spaced(v.Name))
	}

	if len(lines) > 0 {
		tip.Total = fmt.Sprintf("__%s__  \nAvailable %s data per organisation  \n", name, b.text) +
			strings.Join(lines, "  \n")
	} else {
		tip.Total = fmt.Sprintf("No %ss with information on __%s__ appear to be available.", b.text, spaced(v.Name))
	}

	b.rows = append(b.rows, row)
	b.tooltips = append(b.tooltips, tip)
}

// valueRow counts records of the variable's class whose sub class is the
// term's target class.
func (b *rowBuilder) valueRow(v models.Variable, term models.ValueTerm, perOrg [][]models.VariableCount) {
	varName, valName := label(v.Name), label(term.Name)
	row := Row{Value: valName, VariableKey: v.Name, ValueKey: term.Name, Counts: make([]int, len(b.orgs))}
	tip := Tooltip{
		Values: b.prefixes.Compact(fmt.Sprintf("%s - __%s__  \nAssociated class: %s",
			varName, valName, term.TargetClass)),
		Organisations: make([]string, len(b.orgs)),
	}

	var lines []string
	for i, org := range b.orgs {
		rec, ok := firstMatch(perOrg[i], term.TargetClass)
		if !ok {
			tip.Organisations[i] = fmt.Sprintf("No %ss that have __%s__ as %s appear available in %s.",
				b.text, spaced(term.Name), spaced(v.Name), org)
			continue
		}
		row.Counts[i] = rec.SubClassCount
		row.Total += rec.SubClassCount
		lines = append(lines, fmt.Sprintf("%s: __%d__", org, rec.SubClassCount))
		tip.Organisations[i] = fmt.Sprintf("__%d__ %ss in %s have __%s__ as %s.",
			rec.SubClassCount, b.text, org, spaced(term.Name), spaced(v.Name))
	}

	if len(lines) > 0 {
		tip.Total = fmt.Sprintf("%s - __%s__  \nAvailable %s data per organisation  \n", varName, valName, b.text) +
			strings.Join(lines, "  \n")
	} else {
		tip.Total = fmt.Sprintf("No %ss with __%s__ for %s appear to be available.",
			b.text, spaced(term.Name), spaced(v.Name))
	}

	b.rows = append(b.rows, row)
	b.tooltips = append(b.tooltips, tip)
}
