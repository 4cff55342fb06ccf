package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SynonymEntry maps a word to its replacements. The first alternative is the
// canonical deterministic substitution.
type SynonymEntry struct {
	Word         string
	Alternatives []string
}

// SynonymTable preserves rule-file document order. Substitution order matters
// when keys overlap, so a plain map (unordered) would break determinism.
type SynonymTable []SynonymEntry

// UnmarshalYAML decodes a YAML mapping into an ordered table
func (t *SynonymTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("synonyms: expected a mapping, got %v", node.Kind)
	}

	out := make(SynonymTable, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		var alts []string
		if err := valNode.Decode(&alts); err != nil {
			return fmt.Errorf("synonyms.%s: %w", keyNode.Value, err)
		}

		out = append(out, SynonymEntry{Word: keyNode.Value, Alternatives: alts})
	}

	*t = out
	return nil
}

// MarshalYAML renders the table back as an ordered mapping
func (t SynonymTable) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range t {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: entry.Word}
		valNode := &yaml.Node{}
		if err := valNode.Encode(entry.Alternatives); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}
