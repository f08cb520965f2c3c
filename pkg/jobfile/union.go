package jobfile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringOrList decodes from either a YAML scalar or a sequence of scalars.
type StringOrList struct {
	Items []string
	List  bool // decoded from a sequence
}

func (s *StringOrList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*s = StringOrList{}
			return nil
		}
		*s = StringOrList{Items: []string{node.Value}}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, c := range node.Content {
			if c.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: expected a scalar list entry", c.Line)
			}
			if c.Tag == "!!null" {
				items = append(items, "")
				continue
			}
			items = append(items, c.Value)
		}
		*s = StringOrList{Items: items, List: true}
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
}

func (s StringOrList) MarshalYAML() (interface{}, error) {
	if !s.List && len(s.Items) == 1 {
		return s.Items[0], nil
	}
	return s.Items, nil
}

// IsZero reports an absent field. An explicit empty list is not zero.
func (s StringOrList) IsZero() bool { return !s.List && len(s.Items) == 0 }
