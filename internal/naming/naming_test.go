package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"   ", ""},
		{"name", "Name"},
		{"user_name", "UserName"},
		{"user-name", "UserName"},
		{"user.name", "UserName"},
		{"user  name", "UserName"},
		{"__user__name__", "UserName"},
		{"userID", "UserID"},
		{"UserName", "UserName"},
		{"created_at_2", "CreatedAt2"},
		{"2fa_enabled", "2faEnabled"},
		{"$ref", "Ref"},
		{"a@b", "AB"},
		{"v2beta", "V2beta"},
		{"@@@", ""},
		{"émile", "Mile"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToPascalCase(tt.input))
		})
	}
}

func TestToPascalCase_Idempotent(t *testing.T) {
	inputs := []string{"", "a", "user_name", "UserName", "x-y-z", "HTTP_status_code", "a1b2", "--", "mixed CASE words", "itemsItem"}
	for _, in := range inputs {
		once := ToPascalCase(in)
		assert.Equal(t, once, ToPascalCase(once), "input %q", in)
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{" \t ", ""},
		{"name", "name"},
		{"user_name", "userName"},
		{"User_Name", "userName"},
		{"first name last", "firstNameLast"},
		{"ID", "iD"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToCamelCase(tt.input))
		})
	}
}

func TestIdentifier(t *testing.T) {
	assert.Equal(t, "Fallback", Identifier("", "Fallback"))
	assert.Equal(t, "_2faEnabled", Identifier("2faEnabled", "Fallback"))
	assert.Equal(t, "@class", Identifier("class", "Fallback"))
	assert.Equal(t, "Class", Identifier("Class", "Fallback"))
	assert.Equal(t, "Name", Identifier("Name", "Fallback"))
}

func TestClassName(t *testing.T) {
	assert.Equal(t, "Addr", ClassName("addr"))
	assert.Equal(t, "ItemsItem", ClassName("itemsItem"))
	assert.Equal(t, "ShippingAddress", ClassName("shipping_address"))
	assert.Equal(t, "Class", ClassName("@@@"))
	assert.Equal(t, "_3dModel", ClassName("3d-model"))
}

func TestRegistry_Unique(t *testing.T) {
	r := NewRegistry("MyClass")

	assert.Equal(t, "Addr", r.Unique("Addr"))
	assert.Equal(t, "Addr1", r.Unique("Addr"))
	assert.Equal(t, "Addr2", r.Unique("Addr"))
	assert.Equal(t, "MyClass1", r.Unique("MyClass"))
	assert.True(t, r.Taken("Addr1"))
	assert.False(t, r.Taken("Other"))
}

func TestRegistry_SkipsReservedSuffixes(t *testing.T) {
	r := NewRegistry("Addr", "Addr1")

	assert.Equal(t, "Addr2", r.Unique("Addr"))
}

func TestRegistry_Release(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, "Addr", r.Unique("Addr"))
	assert.Equal(t, "Addr1", r.Unique("Addr"))
	r.Release("Addr1")
	assert.False(t, r.Taken("Addr1"))
	assert.Equal(t, "Addr1", r.Unique("Addr"))
}

func TestSingularize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Items", "Item"},
		{"Categories", "Category"},
		{"Addresses", "Address"},
		{"Classes", "Class"},
		{"Boxes", "Box"},
		{"Matches", "Match"},
		{"People", "Person"},
		{"children", "child"},
		{"Status", "Status"},
		{"Data", "Data"},
		{"Class", "Class"},
		{"Item", "Item"},
		{"s", "s"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Singularize(tt.input))
		})
	}
}
