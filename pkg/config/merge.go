package config

// nestedKeys lists, per branch, the keys merged one level deeper.
var nestedKeys = map[string][]string{
	KeyHeader: nil,
	KeyFooter: {"numbering_options", "style"},
	KeyBody:   nil,
}

// branchOrder fixes the order branches are assembled in.
var branchOrder = []string{KeyFooter, KeyHeader, KeyBody}

// Merge folds sources into one tree. Sources are ordered from most to least
// authoritative; nil sources are treated as empty and none are modified.
//
// The result always contains the header, footer and body branches (possibly
// empty), and the footer branch always contains numbering_options and style
// maps. Non-map values found where a branch or nested map is expected are
// ignored by the deep merge.
//
// Merge does not detect cycles; sources must be trees.
func Merge(sources ...Tree) Tree {
	merged := make(Tree)
	for i := len(sources) - 1; i >= 0; i-- {
		for k, v := range sources[i] {
			merged[k] = v
		}
	}
	for _, key := range branchOrder {
		merged[key] = mergeBranch(key, nestedKeys[key], sources)
	}
	return merged
}

// tableNestedKeys are the table option keys merged one level deep.
var tableNestedKeys = []string{"cell_style", "header_format", "footer_format"}

// MergeTable folds table option sources. The keys cell_style,
// header_format and footer_format are deep merged and always present in the
// result; every other key is a shallow override.
func MergeTable(sources ...Tree) Tree {
	merged := make(Tree)
	for i := len(sources) - 1; i >= 0; i-- {
		for k, v := range sources[i] {
			merged[k] = v
		}
	}
	for _, key := range tableNestedKeys {
		acc := make(Tree)
		for i := len(sources) - 1; i >= 0; i-- {
			overlay(acc, CanonicalStyle(sources[i].Branch(key)))
		}
		merged[key] = acc
	}
	return merged
}

// mergeBranch walks sources from least to most authoritative and overlays
// the branch onto an accumulator. Nested keys get their own accumulators so
// that a higher source's partial map does not replace a lower one.
func mergeBranch(key string, nested []string, sources []Tree) Tree {
	branch := make(Tree)
	deep := make(map[string]Tree, len(nested))
	for _, k := range nested {
		deep[k] = make(Tree)
	}

	for i := len(sources) - 1; i >= 0; i-- {
		src := sources[i].Branch(key)
		if src == nil {
			continue
		}
		for _, k := range nested {
			overlay(deep[k], CanonicalStyle(src.Branch(k)))
		}
		overlay(branch, src)
	}

	for k, v := range deep {
		branch[k] = v
	}
	return branch
}

// overlay copies every key of src onto dst. Map values are cloned so the
// merged tree never aliases a source map.
func overlay(dst, src Tree) {
	for k, v := range src {
		if sub, ok := AsTree(v); ok {
			dst[k] = sub.Clone()
			continue
		}
		dst[k] = v
	}
}

// styleAliases maps alias style keys to their canonical names.
var styleAliases = map[string]string{
	"font_size": "size",
	"styles":    "style",
}

// CanonicalStyle returns a copy of a style tree with alias keys renamed to
// their canonical keys, so that a higher source's alias outranks a lower
// source's canonical key once merged. A list-valued styles alias becomes
// its first element. When a tree holds both a key and its alias, the
// canonical key wins.
func CanonicalStyle(t Tree) Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for k, v := range t {
		if _, aliased := styleAliases[k]; !aliased {
			out[k] = v
		}
	}
	for alias, key := range styleAliases {
		v, ok := t[alias]
		if !ok {
			continue
		}
		if _, set := t[key]; set {
			continue
		}
		if key == "style" {
			first, ok := firstElement(v)
			if !ok {
				continue
			}
			v = first
		}
		out[key] = v
	}
	return out
}

func firstElement(v any) (any, bool) {
	switch list := v.(type) {
	case []any:
		if len(list) == 0 {
			return nil, false
		}
		return list[0], true
	case []string:
		if len(list) == 0 {
			return nil, false
		}
		return list[0], true
	case string:
		return list, true
	}
	return nil, false
}
