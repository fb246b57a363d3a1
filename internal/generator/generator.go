// Package generator renders an inferred class model as C# source.
package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mcncl/cstyper/internal/config"
	"github.com/mcncl/cstyper/internal/models"
	"github.com/mcncl/cstyper/internal/naming"
)

const indentUnit = "    "

// Generator is responsible for rendering C# class declarations from an inferred model
type Generator struct{}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// Emit renders the root class followed by every sub-class in discovery
// order. Sub-classes share the root's policy except static, which only
// applies to the root class.
func (g *Generator) Emit(model models.GeneratedModel, policy config.EmitPolicy) string {
	var buf bytes.Buffer

	if policy.FileHeader != "" {
		for _, line := range strings.Split(strings.TrimRight(policy.FileHeader, "\n"), "\n") {
			buf.WriteString(strings.TrimRight("// "+line, " \t\r") + "\n")
		}
		buf.WriteString("\n")
	}

	if policy.IncludePropertyAttribute {
		fmt.Fprintf(&buf, "using %s;\n\n", policy.AttributeStyle.Namespace())
	}

	indent := ""
	blockNamespace := false
	if policy.NamespaceName != "" {
		if policy.FileScopedNamespace {
			fmt.Fprintf(&buf, "namespace %s;\n\n", policy.NamespaceName)
		} else {
			fmt.Fprintf(&buf, "namespace %s\n{\n", policy.NamespaceName)
			indent = indentUnit
			blockNamespace = true
		}
	}

	rootName := model.Root.Name
	if policy.ClassName != "" {
		rootName = naming.ClassName(policy.ClassName)
	}

	g.writeClass(&buf, model.Root, rootName, policy, policy.IsStatic, indent)
	for _, sub := range model.SubClasses {
		buf.WriteString("\n")
		g.writeClass(&buf, sub, sub.Name, policy, false, indent)
	}

	if blockNamespace {
		buf.WriteString("}\n")
	}

	return buf.String()
}

func (g *Generator) writeClass(buf *bytes.Buffer, def models.ClassDefinition, name string, policy config.EmitPolicy, static bool, indent string) {
	modifiers := policy.AccessModifier.Keyword()
	if static {
		modifiers += " static"
	}
	fmt.Fprintf(buf, "%s%s class %s\n", indent, modifiers, name)
	fmt.Fprintf(buf, "%s{\n", indent)

	memberIndent := indent + indentUnit
	names := naming.NewRegistry(name)
	for i, member := range def.Members {
		if policy.IncludePropertyAttribute {
			fmt.Fprintf(buf, "%s[%s(%s)]\n", memberIndent, policy.AttributeStyle.Attribute(), csharpString(member.Key))
		}

		propModifiers := "public"
		if static {
			propModifiers += " static"
		}
		fmt.Fprintf(buf, "%s%s %s %s { get; set; }\n",
			memberIndent, propModifiers, typeName(member.Type, policy.UseNullableAnnotations), propertyName(member.Key, policy, names))

		if policy.IncludePropertyAttribute && i < len(def.Members)-1 {
			buf.WriteString("\n")
		}
	}

	fmt.Fprintf(buf, "%s}\n", indent)
}

// propertyName returns the key verbatim when Pascal-casing is off. Otherwise
// it returns a valid identifier that is unique within the class.
func propertyName(key string, policy config.EmitPolicy, names *naming.Registry) string {
	if !policy.UsePascalCaseNames {
		return key
	}
	return names.Unique(naming.Identifier(naming.ToPascalCase(key), "Property"))
}

var primitiveTokens = map[models.PrimitiveKind]string{
	models.Integer:   "int",
	models.Decimal:   "decimal",
	models.Boolean:   "bool",
	models.Text:      "string",
	models.Guid:      "Guid",
	models.DateTime:  "DateTime",
	models.DateOnly:  "DateOnly",
	models.AnyObject: "object",
}

// typeName maps an inferred type to its C# token. The nullable marker is only
// applied to the outer type.
func typeName(t models.InferredType, nullable bool) string {
	token := typeToken(t)
	if nullable {
		return token + "?"
	}
	return token
}

func typeToken(t models.InferredType) string {
	switch t.Kind {
	case models.TypeClassRef:
		return t.ClassName
	case models.TypeCollection:
		if t.Elem == nil {
			return "List<object>"
		}
		return "List<" + typeToken(*t.Elem) + ">"
	default:
		if token, ok := primitiveTokens[t.Primitive]; ok {
			return token
		}
		return "object"
	}
}

// csharpString quotes s as a regular C# string literal.
func csharpString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
