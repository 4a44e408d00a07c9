/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package manifest

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts a scalar parameter name or a mapping of fixed parameters.
func (b *BindingSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&b.Param)
	case yaml.MappingNode:
		params := make(map[string]any)
		if err := node.Decode(&params); err != nil {
			return err
		}
		b.Params = params
		return nil
	}
	return fmt.Errorf("line %d: entity binding must be a parameter name or a mapping", node.Line)
}

func parseYAML(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode YAML manifest: %w", err)
	}
	return &m, nil
}
