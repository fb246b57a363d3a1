package formatter

import (
	"testing"

	"github.com/mcncl/cstyper/internal/config"
	"github.com/mcncl/cstyper/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_ReindentsClass(t *testing.T) {
	input := `namespace MyNamespace;

public class Person
{
public string Name { get; set; }
        public int Age { get; set; }
}`

	expected := `namespace MyNamespace;

public class Person
{
    public string Name { get; set; }
    public int Age { get; set; }
}
`

	formatted, err := NewFormatter().Format(input)
	require.NoError(t, err)
	assert.Equal(t, expected, formatted)
}

func TestFormat_BlockNamespace(t *testing.T) {
	input := `namespace Shop
{
public class Order
{
[JsonProperty("id")]
public int Id { get; set; }
}
}
`

	expected := `namespace Shop
{
    public class Order
    {
        [JsonProperty("id")]
        public int Id { get; set; }
    }
}
`

	formatted, err := NewFormatter().Format(input)
	require.NoError(t, err)
	assert.Equal(t, expected, formatted)
}

func TestFormat_CollapsesBlankLines(t *testing.T) {
	input := "\n\npublic class A\n{\n\n\n    public int X { get; set; }\n}\n\n\n\n"

	formatted, err := NewFormatter().Format(input)
	require.NoError(t, err)
	assert.Equal(t, "public class A\n{\n\n    public int X { get; set; }\n}\n", formatted)
}

func TestFormat_TabsAndIndentSize(t *testing.T) {
	input := "public class A\n{\npublic int X { get; set; }\n}\n"

	formatted, err := NewFormatterWithConfig(config.FormattingConfig{UseTabs: true}).Format(input)
	require.NoError(t, err)
	assert.Equal(t, "public class A\n{\n\tpublic int X { get; set; }\n}\n", formatted)

	formatted, err = NewFormatterWithConfig(config.FormattingConfig{IndentSize: 2}).Format(input)
	require.NoError(t, err)
	assert.Equal(t, "public class A\n{\n  public int X { get; set; }\n}\n", formatted)
}

func TestFormat_CRLF(t *testing.T) {
	input := "public class A\r\n{\r\npublic int X { get; set; }\r\n}"

	formatted, err := NewFormatterWithConfig(config.FormattingConfig{IndentSize: 4, LineEnding: "crlf"}).Format(input)
	require.NoError(t, err)
	assert.Equal(t, "public class A\r\n{\r\n    public int X { get; set; }\r\n}\r\n", formatted)
}

func TestFormat_IgnoresBracesInLiteralsAndComments(t *testing.T) {
	input := `// header with { brace
public class A
{
[JsonProperty("{weird}")]
[JsonProperty("quote \" {")]
public char C { get; set; } // '{'
}
`

	expected := `// header with { brace
public class A
{
    [JsonProperty("{weird}")]
    [JsonProperty("quote \" {")]
    public char C { get; set; } // '{'
}
`

	formatted, err := NewFormatter().Format(input)
	require.NoError(t, err)
	assert.Equal(t, expected, formatted)
}

func TestFormat_PropertyNamesWithBraces(t *testing.T) {
	input := "public class A\n{\npublic int a} { get; set; }\npublic int {b { get; set; }\npublic int } { get; set; }\n}\n"

	expected := `public class A
{
    public int a} { get; set; }
    public int {b { get; set; }
    public int } { get; set; }
}
`

	formatted, err := NewFormatter().Format(input)
	require.NoError(t, err)
	assert.Equal(t, expected, formatted)
}

func TestFormat_UnbalancedBraces(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unclosed", "public class A\n{\npublic int X { get; set; }\n"},
		{"extra close", "public class A\n{\n}\n}\n"},
		{"close first", "}\npublic class A\n{\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFormatter().Format(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrUnbalancedBraces))

			var appErr *errors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, errors.ErrorTypeFormat, appErr.Type)
		})
	}
}

func TestFormat_EmptyInput(t *testing.T) {
	formatted, err := NewFormatter().Format("  \n\t")
	require.NoError(t, err)
	assert.Empty(t, formatted)
}

func TestFormat_Idempotent(t *testing.T) {
	input := "namespace N\n{\npublic class A\n{\npublic int X { get; set; }\n\npublic B Y { get; set; }\n}\n}\n"

	f := NewFormatter()
	once, err := f.Format(input)
	require.NoError(t, err)
	twice, err := f.Format(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}
