// Package htmltable renders an ordered set of homogeneous records as an HTML
// table fragment.
package htmltable

import "strings"

// Cell is one named scalar of a record.
type Cell struct {
	Field string
	Value string
}

// Record is an ordered list of cells. The order of the first record in a set
// defines the rendered column order; that contract is deliberate, not an
// accident of map iteration.
type Record []Cell

// Lookup returns the value of the named field.
func (r Record) Lookup(field string) (string, bool) {
	for _, c := range r {
		if c.Field == field {
			return c.Value, true
		}
	}
	return "", false
}

// Render produces a table with one header cell per field of the first record
// and one body row per record. Body cells are resolved by field name against
// the first record's header, so a later record with a different field set
// yields empty cells for the fields it lacks; the set is assumed homogeneous
// and this is not verified. An empty input yields a header-less, body-less
// table shell.
//
// Values are interpolated verbatim, with no HTML escaping. Output is only
// safe for trusted record values.
func Render(records []Record) string {
	var b strings.Builder
	b.WriteString(`<table class="table"><thead><tr>`)

	var header []string
	if len(records) > 0 {
		for _, c := range records[0] {
			header = append(header, c.Field)
			b.WriteString(`<th scope="col">`)
			b.WriteString(c.Field)
			b.WriteString(`</th>`)
		}
	}
	b.WriteString(`</tr></thead><tbody>`)

	for _, rec := range records {
		b.WriteString(`<tr>`)
		for _, field := range header {
			v, _ := rec.Lookup(field)
			b.WriteString(`<td>`)
			b.WriteString(v)
			b.WriteString(`</td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)

	return b.String()
}
