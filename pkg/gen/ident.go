package gen

import (
	"fmt"
	"strings"
	"unicode"
)

// SanitizeName converts an arbitrary group or node name into a valid
// Python identifier: non-identifier runes become underscores, a leading
// digit gets an underscore prefix, the result is lowercased, and an
// empty input falls back to "node".
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s != "" && unicode.IsDigit(rune(s[0])) {
		s = "_" + s
	}
	if s == "" {
		s = "node"
	}
	return strings.ToLower(s)
}

// names assigns routine names for group names, one per run. Distinct
// groups whose sanitized names collide ("My Group" and "My-Group" both
// sanitize to "my_group") get numeric suffixes in assignment order, so
// the mapping is stable across repeated exports of the same closure.
type names struct {
	byGroup map[string]string
	taken   map[string]int
}

func newNames() *names {
	return &names{
		byGroup: make(map[string]string),
		taken:   make(map[string]int),
	}
}

// base returns the sanitized, collision-free name stem for the group,
// assigning one on first use.
func (n *names) base(group string) string {
	if b, ok := n.byGroup[group]; ok {
		return b
	}
	b := SanitizeName(group)
	n.taken[b]++
	if c := n.taken[b]; c > 1 {
		b = fmt.Sprintf("%s_%d", b, c)
	}
	n.byGroup[group] = b
	return b
}

// routine returns the Python function name for the group's creation
// routine.
func (n *names) routine(group string) string {
	return fmt.Sprintf("create_%s_node_group", n.base(group))
}
