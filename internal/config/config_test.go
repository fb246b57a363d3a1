package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mcncl/cstyper/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "MyClass", cfg.Policy.ClassName)
	assert.Equal(t, "MyNamespace", cfg.Policy.NamespaceName)
	assert.Equal(t, Public, cfg.Policy.AccessModifier)
	assert.False(t, cfg.Policy.IsStatic)
	assert.False(t, cfg.Policy.UseNullableAnnotations)
	assert.True(t, cfg.Policy.UsePascalCaseNames)
	assert.False(t, cfg.Policy.IncludePropertyAttribute)
	assert.Equal(t, Newtonsoft, cfg.Policy.AttributeStyle)
	assert.True(t, cfg.Policy.FileScopedNamespace)
	assert.Equal(t, 64, cfg.Inference.MaxDepth)
	assert.Equal(t, CollisionSuffix, cfg.Inference.NameCollisions)
	assert.True(t, cfg.Formatting.Enabled)
	assert.Equal(t, 4, cfg.Formatting.IndentSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
class_name: Order
namespace: Shop.Models
access_modifier: protected internal
static: true
nullable: true
pascal_case_names: false
property_attribute: true
attribute_style: system-text-json
file_scoped_namespace: false
file_header: "Generated by cstyper"
inference:
  max_depth: 10
  name_collisions: error
  reuse_identical_classes: true
  singularize_item_names: true
formatting:
  enabled: false
  indent_size: 2
  use_tabs: true
  line_ending: crlf
watch:
  debounce: 250ms
dev:
  debug: true
`
	path := writeConfigFile(t, t.TempDir(), "cstyper.yml", yamlContent)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Order", cfg.Policy.ClassName)
	assert.Equal(t, "Shop.Models", cfg.Policy.NamespaceName)
	assert.Equal(t, ProtectedInternal, cfg.Policy.AccessModifier)
	assert.True(t, cfg.Policy.IsStatic)
	assert.True(t, cfg.Policy.UseNullableAnnotations)
	assert.False(t, cfg.Policy.UsePascalCaseNames)
	assert.True(t, cfg.Policy.IncludePropertyAttribute)
	assert.Equal(t, SystemTextJSON, cfg.Policy.AttributeStyle)
	assert.False(t, cfg.Policy.FileScopedNamespace)
	assert.Equal(t, "Generated by cstyper", cfg.Policy.FileHeader)
	assert.Equal(t, 10, cfg.Inference.MaxDepth)
	assert.Equal(t, CollisionError, cfg.Inference.NameCollisions)
	assert.True(t, cfg.Inference.ReuseIdenticalClasses)
	assert.True(t, cfg.Inference.SingularizeItemNames)
	assert.False(t, cfg.Formatting.Enabled)
	assert.Equal(t, 2, cfg.Formatting.IndentSize)
	assert.True(t, cfg.Formatting.UseTabs)
	assert.Equal(t, "crlf", cfg.Formatting.LineEnding)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.True(t, cfg.Dev.Debug)
}

func TestConfig_PartialYAMLKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), "cstyper.yml", "namespace: Api\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Api", cfg.Policy.NamespaceName)
	assert.Equal(t, "MyClass", cfg.Policy.ClassName)
	assert.True(t, cfg.Policy.UsePascalCaseNames)
	assert.Equal(t, 64, cfg.Inference.MaxDepth)
}

func TestConfig_LoadInvalid(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		invalidOption bool
	}{
		{"bad yaml", "class_name: [unclosed\n", false},
		{"bad access modifier", "access_modifier: friend\n", true},
		{"bad attribute style", "attribute_style: xml\n", true},
		{"bad collision policy", "inference:\n  name_collisions: merge\n", true},
		{"negative depth", "inference:\n  max_depth: -1\n", true},
		{"bad line ending", "formatting:\n  line_ending: cr\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, t.TempDir(), "cstyper.yml", tt.content)
			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.Equal(t, tt.invalidOption, errors.Is(err, errors.ErrInvalidOption))
		})
	}
}

func TestConfig_LoadMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestConfig_SaveAndLoadRoundTrip(t *testing.T) {
	cfg := NewConfig()
	cfg.Policy.ClassName = "Invoice"
	cfg.Policy.AccessModifier = PrivateProtected
	cfg.Policy.AttributeStyle = SystemTextJSON
	cfg.Policy.UseNullableAnnotations = true
	cfg.Watch.Debounce = time.Second

	path := filepath.Join(t.TempDir(), ".cstyper.yml")
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Empty(t, findConfigFileFrom(nested))

	path := writeConfigFile(t, root, ".cstyper.yml", "class_name: Found\n")
	assert.Equal(t, path, findConfigFileFrom(nested))
}

func TestLoadConfigWithCLI(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), "cstyper.yml", `
class_name: FromFile
namespace: FromFile.Ns
nullable: false
`)

	cfg, err := LoadConfigWithCLI(path, CLIOverrides{
		ClassName:      "FromFlag",
		AccessModifier: "internal",
		Nullable:       true,
		Attributes:     true,
		KeepNames:      true,
		BlockNamespace: true,
		NoFormat:       true,
	})
	require.NoError(t, err)

	assert.Equal(t, "FromFlag", cfg.Policy.ClassName)
	assert.Equal(t, "FromFile.Ns", cfg.Policy.NamespaceName)
	assert.Equal(t, Internal, cfg.Policy.AccessModifier)
	assert.True(t, cfg.Policy.UseNullableAnnotations)
	assert.True(t, cfg.Policy.IncludePropertyAttribute)
	assert.False(t, cfg.Policy.UsePascalCaseNames)
	assert.False(t, cfg.Policy.FileScopedNamespace)
	assert.False(t, cfg.Formatting.Enabled)
}

func TestLoadConfigWithCLI_NoFile(t *testing.T) {
	cfg, err := LoadConfigWithCLI("", CLIOverrides{})
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg)
}

func TestLoadConfigWithCLI_InvalidOverride(t *testing.T) {
	_, err := LoadConfigWithCLI("", CLIOverrides{AccessModifier: "friend"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))
	assert.Contains(t, err.Error(), `invalid access modifier "friend"`)

	_, err = LoadConfigWithCLI("", CLIOverrides{AttributeStyle: "xml"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))
}

func TestParseAccessModifier(t *testing.T) {
	tests := []struct {
		input    string
		expected AccessModifier
	}{
		{"public", Public},
		{"Private", Private},
		{"protected", Protected},
		{"internal", Internal},
		{"protected internal", ProtectedInternal},
		{"protectedInternal", ProtectedInternal},
		{"protected-internal", ProtectedInternal},
		{"private_protected", PrivateProtected},
		{"privateProtected", PrivateProtected},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseAccessModifier(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
		})
	}

	_, err := ParseAccessModifier("friend")
	assert.Error(t, err)
}

func TestAccessModifier_Keyword(t *testing.T) {
	assert.Equal(t, "public", Public.Keyword())
	assert.Equal(t, "protected internal", ProtectedInternal.Keyword())
	assert.Equal(t, "private protected", PrivateProtected.Keyword())
	assert.Equal(t, "public", AccessModifier(99).Keyword())
}

func TestAttributeStyle(t *testing.T) {
	s, err := ParseAttributeStyle("System.Text.Json")
	require.NoError(t, err)
	assert.Equal(t, SystemTextJSON, s)
	assert.Equal(t, "JsonPropertyName", s.Attribute())
	assert.Equal(t, "System.Text.Json.Serialization", s.Namespace())

	s, err = ParseAttributeStyle("Json.NET")
	require.NoError(t, err)
	assert.Equal(t, Newtonsoft, s)
	assert.Equal(t, "JsonProperty", s.Attribute())
	assert.Equal(t, "Newtonsoft.Json", s.Namespace())
}
