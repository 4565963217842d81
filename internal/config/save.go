package config

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SettableKeys lists the dotted keys SetValue accepts.
var SettableKeys = []string{
	"booking.endpoint",
	"booking.timeout",
	"ui.toast_duration",
	"ui.markdown_style",
	"theme.accent",
	"theme.muted",
	"theme.error",
	"theme.success",
}

// SetValue writes a single dotted key into the config file.
// Comments and formatting in other sections are preserved by editing the yaml.Node tree.
func SetValue(configPath, key, value string) error {
	if !slices.Contains(SettableKeys, key) {
		return fmt.Errorf("unknown config key %q (settable: %s)", key, strings.Join(SettableKeys, ", "))
	}
	if err := checkValue(key, value); err != nil {
		return err
	}

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	node := doc.Content[0]
	path := strings.Split(key, ".")
	for _, part := range path[:len(path)-1] {
		node = childMapping(node, part)
	}
	setScalar(node, path[len(path)-1], value)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := os.WriteFile(configPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// checkValue rejects values that would fail validation on the next load.
func checkValue(key, value string) error {
	switch key {
	case "booking.endpoint":
		return ValidateBooking(BookingConfig{Endpoint: value})
	case "booking.timeout", "ui.toast_duration":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", key, d)
		}
	case "ui.markdown_style":
		return ValidateUI(UIConfig{MarkdownStyle: value})
	}
	return nil
}

// childMapping returns the mapping under key, creating it (or replacing a non-mapping) as needed.
func childMapping(parent *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(parent.Content)-1; i += 2 {
		if parent.Content[i].Value == key {
			child := parent.Content[i+1]
			if child.Kind != yaml.MappingNode {
				child = &yaml.Node{Kind: yaml.MappingNode}
				parent.Content[i+1] = child
			}
			return child
		}
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	parent.Content = append(parent.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		child,
	)
	return child
}

func setScalar(parent *yaml.Node, key, value string) {
	scalar := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	for i := 0; i < len(parent.Content)-1; i += 2 {
		if parent.Content[i].Value == key {
			// Keep any line comment attached to the old value
			scalar.LineComment = parent.Content[i+1].LineComment
			parent.Content[i+1] = scalar
			return
		}
	}
	parent.Content = append(parent.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		scalar,
	)
}
