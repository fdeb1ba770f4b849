// Package particle parses the random-range values used throughout the
// fireworks configuration.
//
// A range is written either as a fixed value ("1500") or as a bracketed
// pair ("[100 200]"), the same value syntax the particle configs have
// always used.
package particle

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rand is the random source a Range samples from.
type Rand interface {
	Float64() float64
}

// Range is a closed interval [Min, Max]. A fixed value has Min == Max.
type Range struct {
	Min float64
	Max float64
}

// Fixed returns a degenerate range holding a single value.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Between returns the range [min, max].
func Between(min, max float64) Range {
	return Range{Min: min, Max: max}
}

// ParseRange parses a value string.
// Supported formats:
//   - Fixed value: "1500" → Min=1500, Max=1500
//   - Range: "[0.7 0.9]" → Min=0.7, Max=0.9
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty range")
	}

	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return Range{}, fmt.Errorf("unterminated range %q", s)
		}
		parts := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
		if len(parts) != 2 {
			return Range{}, fmt.Errorf("range %q must have exactly two bounds", s)
		}
		min, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid lower bound in %q: %w", s, err)
		}
		max, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid upper bound in %q: %w", s, err)
		}
		if min > max {
			return Range{}, fmt.Errorf("range %q has min > max", s)
		}
		return Range{Min: min, Max: max}, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return Fixed(v), nil
}

// MustParseRange panics on malformed input. Intended for literals.
func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Sample returns a value uniformly distributed in [Min, Max).
func (r Range) Sample(rnd Rand) float64 {
	if r.Min >= r.Max {
		return r.Min
	}
	return r.Min + rnd.Float64()*(r.Max-r.Min)
}

// SampleInt samples and truncates toward zero, like `value | 0`.
func (r Range) SampleInt(rnd Rand) int {
	return int(r.Sample(rnd))
}

// Contains reports whether v lies within the closed interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// IsFixed reports whether the range holds a single value.
func (r Range) IsFixed() bool {
	return r.Min == r.Max
}

func (r Range) String() string {
	if r.IsFixed() {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return "[" + strconv.FormatFloat(r.Min, 'g', -1, 64) + " " + strconv.FormatFloat(r.Max, 'g', -1, 64) + "]"
}

// UnmarshalYAML accepts a scalar ("1500", 1500 or "[100 200]") or a
// two-element sequence ([100, 200]).
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseRange(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*r = parsed
		return nil
	case yaml.SequenceNode:
		var bounds []float64
		if err := node.Decode(&bounds); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		if len(bounds) != 2 || bounds[0] > bounds[1] {
			return fmt.Errorf("line %d: range sequence must be [min, max]", node.Line)
		}
		*r = Range{Min: bounds[0], Max: bounds[1]}
		return nil
	default:
		return fmt.Errorf("line %d: unsupported range node", node.Line)
	}
}

// MarshalYAML writes the bracketed string form.
func (r Range) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}
