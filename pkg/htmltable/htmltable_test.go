package htmltable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHeaderAndRows(t *testing.T) {
	records := []Record{
		{{Field: "name", Value: "A"}, {Field: "qty", Value: "1"}},
		{{Field: "name", Value: "B"}, {Field: "qty", Value: "2"}},
	}

	out := Render(records)

	assert.Equal(t,
		`<table class="table"><thead><tr>`+
			`<th scope="col">name</th><th scope="col">qty</th>`+
			`</tr></thead><tbody>`+
			`<tr><td>A</td><td>1</td></tr>`+
			`<tr><td>B</td><td>2</td></tr>`+
			`</tbody></table>`,
		out)

	// Header order comes from the first record, not from sorting.
	assert.Less(t, strings.Index(out, "name"), strings.Index(out, "qty"))
}

func TestRenderEmptyInput(t *testing.T) {
	out := Render(nil)

	assert.Equal(t, `<table class="table"><thead><tr></tr></thead><tbody></tbody></table>`, out)
}

func TestRenderLooksUpByNameNotPosition(t *testing.T) {
	records := []Record{
		{{Field: "name", Value: "A"}, {Field: "qty", Value: "1"}},
		{{Field: "qty", Value: "2"}, {Field: "name", Value: "B"}},
	}

	out := Render(records)

	assert.Contains(t, out, `<tr><td>B</td><td>2</td></tr>`)
}

func TestRenderLaterRecordMissingField(t *testing.T) {
	records := []Record{
		{{Field: "name", Value: "A"}, {Field: "qty", Value: "1"}},
		{{Field: "name", Value: "B"}},
	}

	out := Render(records)

	// The missing qty becomes an empty cell, silently.
	assert.Contains(t, out, `<tr><td>B</td><td></td></tr>`)
}

func TestRenderDoesNotEscapeValues(t *testing.T) {
	records := []Record{
		{{Field: "name", Value: `<b>bold</b>`}},
	}

	out := Render(records)

	assert.Contains(t, out, `<td><b>bold</b></td>`)
}

func TestRecordLookup(t *testing.T) {
	rec := Record{{Field: "name", Value: "A"}}

	v, ok := rec.Lookup("name")
	assert.True(t, ok)
	assert.Equal(t, "A", v)

	_, ok = rec.Lookup("missing")
	assert.False(t, ok)
}
