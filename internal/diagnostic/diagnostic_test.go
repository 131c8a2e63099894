package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityWarning,
		Category: CategoryTypeUnsupported,
		Location: "#/components/schemas/Item/properties/id",
		Message:  `type "uuid" is not supported, using String`,
		Hint:     `declare "type": "string" with a format instead`,
	}

	s := d.String()
	assert.Contains(t, s, "#/components/schemas/Item/properties/id - ")
	assert.Contains(t, s, "warning")
	assert.Contains(t, s, "[type-unsupported]")
	assert.Contains(t, s, "\n  hint: ")
}

func TestDiagnostic_StringWithoutLocation(t *testing.T) {
	d := Diagnostic{Severity: SeverityError, Message: "boom"}
	assert.Equal(t, "error: boom", d.String())
}

func TestCollector_WarnAndError(t *testing.T) {
	c := NewCollector(false, false)
	c.Warn(CategoryMethodIgnored, "#/paths/~1items/post", "only GET operations are generated")
	c.Error(CategoryConfigInvalid, "", "missing config field")

	assert.Equal(t, 1, c.WarningCount())
	assert.Equal(t, 1, c.ErrorCount())
	assert.True(t, c.HasErrors())
}

func TestCollector_StrictMode(t *testing.T) {
	c := NewCollector(true, false)
	c.Warn(CategoryTypeUnsupported, "#/x", "unsupported type")

	assert.Equal(t, 1, c.ErrorCount(), "warnings become errors in strict mode")
	assert.Equal(t, 0, c.WarningCount())
}

func TestCollector_QuietMode(t *testing.T) {
	c := NewCollector(false, true)
	c.Warn(CategoryTypeUnsupported, "#/x", "unsupported type")
	c.Info(CategorySchemaSkipped, "#/y", "skipped")
	c.Error(CategoryConfigInvalid, "", "real error")

	assert.Len(t, c.Diagnostics(), 1, "only errors survive quiet mode")
}

func TestCollector_Summary(t *testing.T) {
	c := NewCollector(false, false)
	assert.Equal(t, "no issues", c.Summary())

	c.Warn(CategorySchemaSkipped, "#/a", "warn1")
	c.Warn(CategorySchemaSkipped, "#/b", "warn2")
	c.Error(CategoryConfigInvalid, "", "err1")
	assert.Equal(t, "1 error(s), 2 warning(s)", c.Summary())
}

func TestCollector_NilIsSafe(t *testing.T) {
	var c *Collector
	c.Warn(CategorySchemaSkipped, "#/a", "ignored")
	c.Error(CategoryConfigInvalid, "", "ignored")
	assert.Nil(t, c.Diagnostics())
	assert.False(t, c.HasErrors())
	assert.Equal(t, "", c.Summary())
}

func TestPointer(t *testing.T) {
	tests := []struct {
		segments []string
		want     string
	}{
		{nil, "#"},
		{[]string{"components", "schemas", "Item"}, "#/components/schemas/Item"},
		{[]string{"paths", "/items/{id}", "get"}, "#/paths/~1items~1{id}/get"},
		{[]string{"a~b"}, "#/a~0b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Pointer(tt.segments...))
	}
}
