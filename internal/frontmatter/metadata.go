package frontmatter

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Recognised header keys.
const (
	KeyExposed     = "isExposed"
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyDate        = "date"
	KeyTags        = "tags"
	KeyHeroImage   = "heroImage"
)

// Field is a header entry the pipeline does not interpret. Its value node is
// kept as parsed so it can be written back verbatim.
type Field struct {
	Key   string
	Value *yaml.Node
}

// Metadata is a parsed metadata header. Known keys are typed; every other key,
// isExposed included, is kept in Extra in source order.
type Metadata struct {
	IsExposed   bool
	Title       string
	Description string
	Date        string
	Tags        []string
	HeroImage   string
	Extra       []Field
}

// Clone returns a copy that shares no slices with m.
func (m Metadata) Clone() Metadata {
	out := m
	if m.Tags != nil {
		out.Tags = append([]string{}, m.Tags...)
	}
	if m.Extra != nil {
		out.Extra = append([]Field{}, m.Extra...)
	}
	return out
}

// Lookup returns the raw value of a passthrough key.
func (m Metadata) Lookup(key string) (*yaml.Node, bool) {
	for _, f := range m.Extra {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Metadata) UnmarshalYAML(value *yaml.Node) error {
	value = deref(value)
	if value.ShortTag() == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("header is not a mapping (line %d)", value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i].Value, deref(value.Content[i+1])
		var err error
		switch key {
		case KeyTitle:
			m.Title, err = scalar(key, val)
		case KeyDescription:
			m.Description, err = scalar(key, val)
		case KeyDate:
			m.Date, err = scalar(key, val)
		case KeyHeroImage:
			m.HeroImage, err = scalar(key, val)
		case KeyTags:
			m.Tags, err = stringList(val)
		case KeyExposed:
			// Only a real YAML boolean counts; "true" in quotes does not.
			m.IsExposed = val.ShortTag() == "!!bool" && isTrue(val)
			m.Extra = append(m.Extra, Field{Key: key, Value: value.Content[i+1]})
		default:
			m.Extra = append(m.Extra, Field{Key: key, Value: value.Content[i+1]})
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler. Known keys come first in a fixed
// order, followed by passthrough keys in their original order.
func (m Metadata) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	add := func(key string, v any) error {
		var vn yaml.Node
		if err := vn.Encode(v); err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		n.Content = append(n.Content, keyNode(key), &vn)
		return nil
	}

	for _, kv := range []struct {
		key string
		val string
	}{
		{KeyTitle, m.Title},
		{KeyDescription, m.Description},
		{KeyDate, m.Date},
	} {
		if kv.val == "" {
			continue
		}
		if err := add(kv.key, kv.val); err != nil {
			return nil, err
		}
	}
	if m.Tags != nil {
		if err := add(KeyTags, m.Tags); err != nil {
			return nil, err
		}
	}
	if m.HeroImage != "" {
		if err := add(KeyHeroImage, m.HeroImage); err != nil {
			return nil, err
		}
	}
	for _, f := range m.Extra {
		n.Content = append(n.Content, keyNode(f.Key), f.Value)
	}
	return n, nil
}

func keyNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func scalar(key string, n *yaml.Node) (string, error) {
	if n.ShortTag() == "!!null" {
		return "", nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%s must be a scalar (line %d)", key, n.Line)
	}
	return n.Value, nil
}

// stringList accepts a sequence of scalars or a single scalar.
func stringList(n *yaml.Node) ([]string, error) {
	switch {
	case n.ShortTag() == "!!null":
		return nil, nil
	case n.Kind == yaml.ScalarNode:
		if n.Value == "" {
			return nil, nil
		}
		return []string{n.Value}, nil
	case n.Kind == yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			item = deref(item)
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%s entries must be scalars (line %d)", KeyTags, item.Line)
			}
			if item.ShortTag() == "!!null" || item.Value == "" {
				continue
			}
			out = append(out, item.Value)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a list (line %d)", KeyTags, n.Line)
	}
}

func isTrue(n *yaml.Node) bool {
	var b bool
	return n.Decode(&b) == nil && b
}
