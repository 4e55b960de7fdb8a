package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeNames(t *testing.T) {
	reg := NewTypeNames("VARCHAR", "Geometry", "int4")

	assert.True(t, reg.IsKnownTypeName("varchar"))
	assert.True(t, reg.IsKnownTypeName("geometry"))
	assert.True(t, reg.IsKnownTypeName("int4"))
	assert.False(t, reg.IsKnownTypeName("VARCHAR"), "lookups expect lowercased input")
	assert.False(t, reg.IsKnownTypeName("text"))

	var _ TypeRegistry = reg
}

func TestBooleanStyles(t *testing.T) {
	assert.Equal(t, "true", BooleanKeywords.True)
	assert.Equal(t, "0", BooleanNumeric.False)
	assert.Equal(t, "'T'", BooleanChar.True)
}

func TestTypeRegistries(t *testing.T) {
	regs := TypeRegistries{nil, NewTypeNames("geometry"), NewTypeNames("ltree")}

	assert.True(t, regs.IsKnownTypeName("geometry"))
	assert.True(t, regs.IsKnownTypeName("ltree"))
	assert.False(t, regs.IsKnownTypeName("hstore"))
	assert.False(t, TypeRegistries(nil).IsKnownTypeName("int"))
}
