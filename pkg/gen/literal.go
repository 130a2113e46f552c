package gen

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/groupgen/groupgen/pkg/model"
)

var (
	errNonFinite        = errors.New("non-finite float")
	errEmptyTuple       = errors.New("empty tuple")
	errUnknownValueKind = errors.New("unknown value kind")
	errUnknownRefColl   = errors.New("unknown datablock collection")
)

// refCollections are the bpy.data collections reference values may point
// into. Anything else has no lookup expression.
var refCollections = map[string]bool{
	"objects":     true,
	"images":      true,
	"collections": true,
	"materials":   true,
	"node_groups": true,
}

// Literal renders a value as Python source. Every shape gets an explicit
// typed literal; reference values become bpy.data lookup expressions.
// Values with no rendering rule return an error so the caller can abort
// with context.
func Literal(v model.Value) (string, error) {
	switch v.Kind {
	case model.ValueFloat:
		return pyFloat(v.Float)
	case model.ValueInt:
		return strconv.FormatInt(v.Int, 10), nil
	case model.ValueBool:
		return pyBool(v.Bool), nil
	case model.ValueString:
		return pyString(v.Str), nil
	case model.ValueTuple:
		return pyTuple(v.Tuple)
	case model.ValueRef:
		if !refCollections[v.Ref.Collection] {
			return "", fmt.Errorf("%w: %q", errUnknownRefColl, v.Ref.Collection)
		}
		return fmt.Sprintf("bpy.data.%s[%s]", v.Ref.Collection, pyString(v.Ref.Name)), nil
	}
	return "", fmt.Errorf("%w: %q", errUnknownValueKind, v.Kind)
}

// pyFloat formats a float as a Python float literal: shortest exact form,
// with a decimal point forced so the literal stays a float.
func pyFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", errNonFinite
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// pyString renders a double-quoted Python string. Go's quoting rules are
// a subset of Python's for the escapes strconv emits.
func pyString(s string) string {
	return strconv.Quote(s)
}

func pyTuple(vals []float64) (string, error) {
	if len(vals) == 0 {
		return "", errEmptyTuple
	}
	parts := make([]string, len(vals))
	for i, f := range vals {
		p, err := pyFloat(f)
		if err != nil {
			return "", err
		}
		parts[i] = p
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)", nil
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}
