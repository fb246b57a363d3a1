package config

import (
	"strings"

	"github.com/mcncl/cstyper/internal/errors"
	"gopkg.in/yaml.v3"
)

// AccessModifier is the C# access modifier placed on generated classes.
type AccessModifier int

const (
	Public AccessModifier = iota
	Private
	Protected
	Internal
	ProtectedInternal
	PrivateProtected
)

var accessKeywords = map[AccessModifier]string{
	Public:            "public",
	Private:           "private",
	Protected:         "protected",
	Internal:          "internal",
	ProtectedInternal: "protected internal",
	PrivateProtected:  "private protected",
}

// Keyword returns the modifier as written in C# source.
func (m AccessModifier) Keyword() string {
	if kw, ok := accessKeywords[m]; ok {
		return kw
	}
	return accessKeywords[Public]
}

func (m AccessModifier) String() string { return m.Keyword() }

// ParseAccessModifier accepts the C# spelling ("protected internal") as well
// as camel, kebab and snake variants ("protectedInternal", "protected-internal").
func ParseAccessModifier(s string) (AccessModifier, error) {
	key := compact(s)
	for m, kw := range accessKeywords {
		if compact(kw) == key {
			return m, nil
		}
	}
	return Public, errors.Wrapf(errors.ErrInvalidOption, "invalid access modifier %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *AccessModifier) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseAccessModifier(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m AccessModifier) MarshalYAML() (interface{}, error) {
	return m.Keyword(), nil
}

// AttributeStyle selects the serialization attribute emitted above properties.
type AttributeStyle int

const (
	// Newtonsoft emits [JsonProperty("key")] from Newtonsoft.Json.
	Newtonsoft AttributeStyle = iota
	// SystemTextJSON emits [JsonPropertyName("key")] from System.Text.Json.Serialization.
	SystemTextJSON
)

func (s AttributeStyle) String() string {
	if s == SystemTextJSON {
		return "system-text-json"
	}
	return "newtonsoft"
}

// Attribute returns the attribute name.
func (s AttributeStyle) Attribute() string {
	if s == SystemTextJSON {
		return "JsonPropertyName"
	}
	return "JsonProperty"
}

// Namespace returns the namespace the attribute lives in.
func (s AttributeStyle) Namespace() string {
	if s == SystemTextJSON {
		return "System.Text.Json.Serialization"
	}
	return "Newtonsoft.Json"
}

// ParseAttributeStyle parses "newtonsoft" or "system-text-json" (and a few aliases).
func ParseAttributeStyle(s string) (AttributeStyle, error) {
	switch compact(s) {
	case "newtonsoft", "newtonsoftjson", "jsonnet":
		return Newtonsoft, nil
	case "systemtextjson", "stj":
		return SystemTextJSON, nil
	}
	return Newtonsoft, errors.Wrapf(errors.ErrInvalidOption, "invalid attribute style %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *AttributeStyle) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseAttributeStyle(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s AttributeStyle) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// compact lower-cases s and drops spaces, dashes, underscores and dots.
func compact(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '.':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
