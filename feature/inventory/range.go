package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseNumberRange expands a card-number expression into zero-padded numbers.
// Accepted forms: a single number ("042"), an inclusive range ("001-165"),
// or a comma-separated mix of both. Padding width follows the widest token in
// the expression, with a minimum of three digits.
func ParseNumberRange(expr string) ([]string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty card number expression")
	}

	pad := 3
	for _, tok := range strings.Split(expr, ",") {
		for _, part := range strings.Split(tok, "-") {
			if w := len(strings.TrimSpace(part)); w > pad {
				pad = w
			}
		}
	}

	var numbers []string
	seen := make(map[string]struct{})
	add := func(n int) {
		num := fmt.Sprintf("%0*d", pad, n)
		if _, dup := seen[num]; dup {
			return
		}
		seen[num] = struct{}{}
		numbers = append(numbers, num)
	}

	for _, tok := range strings.Split(expr, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		lo, hi, ok := strings.Cut(tok, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid card number %q: %w", tok, err)
		}
		end := start
		if ok {
			end, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("invalid card range %q: %w", tok, err)
			}
		}
		if end < start {
			return nil, fmt.Errorf("descending card range %q", tok)
		}
		for n := start; n <= end; n++ {
			add(n)
		}
	}

	if len(numbers) == 0 {
		return nil, fmt.Errorf("empty card number expression")
	}
	return numbers, nil
}
