package parser

import (
	"fmt"
	"strings"
)

// Arguments holds the pieces of a command line after the command word:
// free text before the first prefix and prefix-keyed values in input order.
type Arguments struct {
	values   map[string][]string
	Preamble string
	order    []string
}

// Tokenize splits args on whitespace and groups words under the most recent
// prefix in prefixes. Words before the first prefix form the preamble.
func Tokenize(args string, prefixes ...string) Arguments {
	out := Arguments{values: make(map[string][]string)}

	var (
		current string
		words   []string
		started bool
	)
	flush := func() {
		value := strings.Join(words, " ")
		if !started {
			out.Preamble = value
		} else {
			out.values[current] = append(out.values[current], value)
			out.order = append(out.order, current)
		}
		words = words[:0]
	}

	for _, word := range strings.Fields(args) {
		prefix, ok := matchPrefix(word, prefixes)
		if !ok {
			words = append(words, word)
			continue
		}
		flush()
		current, started = prefix, true
		if rest := strings.TrimPrefix(word, prefix); rest != "" {
			words = append(words, rest)
		}
	}
	flush()

	return out
}

func matchPrefix(word string, prefixes []string) (string, bool) {
	best := ""
	for _, p := range prefixes {
		if strings.HasPrefix(word, p) && len(p) > len(best) {
			best = p
		}
	}
	return best, best != ""
}

// Has reports whether prefix appeared at least once.
func (a Arguments) Has(prefix string) bool {
	_, ok := a.values[prefix]
	return ok
}

// Value returns the last value given for prefix.
func (a Arguments) Value(prefix string) (string, bool) {
	vs := a.values[prefix]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// All returns every value given for prefix, in input order.
func (a Arguments) All(prefix string) []string {
	return a.values[prefix]
}

// Prefixes returns the prefixes that appeared, in first-seen order.
func (a Arguments) Prefixes() []string {
	seen := make(map[string]bool, len(a.order))
	out := make([]string, 0, len(a.order))
	for _, p := range a.order {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// Only returns the values of the listed prefixes that appeared.
func (a Arguments) Only(prefixes []string) map[string]string {
	out := make(map[string]string)
	for _, p := range prefixes {
		if v, ok := a.Value(p); ok {
			out[p] = v
		}
	}
	return out
}

// RequireSingle fails if any of prefixes was given more than once.
func (a Arguments) RequireSingle(prefixes ...string) error {
	for _, p := range prefixes {
		if len(a.values[p]) > 1 {
			return fmt.Errorf("%w: %s given more than once", ErrInvalidFormat, p)
		}
	}
	return nil
}
