// Package config merges and decodes document settings.
//
// Settings arrive as an ordered list of partial trees, most authoritative
// first: the builder's settings, then the template's, then the library
// defaults. [Merge] folds them into one tree using per-branch depth rules and
// [Decode] turns the result into typed options for geometry and regions.
//
// # Merge Rules
//
// The three branch keys (header, footer, body) are deep merged so that
// partially specifying a branch never erases sibling keys from a lower
// source. Inside footer, numbering_options and style are merged one level
// deeper. Every other key, at any level, is replaced wholesale by the most
// authoritative source that defines it.
//
//	merged := config.Merge(
//	    config.Tree{"footer": config.Tree{"height": 50}},
//	    config.Tree{"footer": config.Tree{"height": 33, "repeated": true}},
//	)
//	// merged["footer"] == Tree{"height": 50, "repeated": true, ...}
//
// # Files
//
// Trees can be loaded from TOML or JSON with [LoadFile] and printed back as
// TOML with [EncodeTOML].
package config

import "sort"

// Branch keys merged as sub-trees rather than replaced.
const (
	KeyHeader = "header"
	KeyFooter = "footer"
	KeyBody   = "body"
)

// KeyStyles holds style sheet overrides. Like every non-branch key it is
// replaced wholesale by the most authoritative source.
const KeyStyles = "styles"

// Tree is a partial or merged configuration. Values are scalars, slices or
// nested maps; both Tree and map[string]any are accepted as nested maps.
type Tree map[string]any

// Branch returns the sub-tree stored under key, or nil when the key is
// absent or not a map.
func (t Tree) Branch(key string) Tree {
	sub, _ := AsTree(t[key])
	return sub
}

// Clone returns a deep copy of the map structure. Leaf values are shared.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for k, v := range t {
		if sub, ok := AsTree(v); ok {
			out[k] = sub.Clone()
			continue
		}
		out[k] = v
	}
	return out
}

// Keys returns the top-level keys in sorted order.
func (t Tree) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Float returns a numeric value stored under key.
func (t Tree) Float(key string) (float64, bool) {
	return toFloat(t[key])
}

// Bool returns a boolean value stored under key.
func (t Tree) Bool(key string) (bool, bool) {
	b, ok := t[key].(bool)
	return b, ok
}

// String returns a string value stored under key.
func (t Tree) String(key string) (string, bool) {
	s, ok := t[key].(string)
	return s, ok
}

// AsTree converts v to a Tree if it is a map with string keys.
func AsTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return Tree(m), true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
