package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParsedItem is one line of an item block: a lookup token and a quantity.
type ParsedItem struct {
	Token string
	Qty   int
}

var (
	// "стойка x2", "систенд 40 x4", "600x4"
	qtyAfterX = regexp.MustCompile(`(?i)x\s*(\d+)\s*$`)
	// "парус 3", "600x 2шт", "hmi 2x" — a trailing whitespace-separated
	// number, optionally marked with "шт" or "x"
	qtyTrailing = regexp.MustCompile(`(?i)(?:^|\s)(\d+)\s*(?:шт|x)?\s*$`)
)

// ParseItemLines turns a free-text block into (token, qty) pairs, one per
// non-empty line. Cyrillic "х" and "×" are normalized to "x" before matching,
// quantities are taken from a trailing marker (default 1) and tokens are
// lowercased. Operators type shorthand, so this is a heuristic grammar, not a
// strict one.
func ParseItemLines(text string) ([]ParsedItem, error) {
	var items []ParsedItem

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		line = strings.NewReplacer("х", "x", "Х", "x", "×", "x").Replace(line)

		token := line
		qty := 1

		if m := qtyAfterX.FindStringSubmatchIndex(line); m != nil {
			n, err := strconv.Atoi(line[m[2]:m[3]])
			if err != nil {
				return nil, fmt.Errorf("bad quantity in line %q: %w", line, err)
			}
			token = line[:m[0]]
			qty = n
		} else if m := qtyTrailing.FindStringSubmatchIndex(line); m != nil {
			n, err := strconv.Atoi(line[m[2]:m[3]])
			if err != nil {
				return nil, fmt.Errorf("bad quantity in line %q: %w", line, err)
			}
			token = line[:m[0]]
			qty = n
		}

		if qty <= 0 {
			return nil, fmt.Errorf("quantity must be positive in line %q", line)
		}

		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			return nil, fmt.Errorf("no item name in line %q", line)
		}

		items = append(items, ParsedItem{Token: token, Qty: qty})
	}

	if len(items) == 0 {
		return nil, errors.New("no item lines found")
	}
	return items, nil
}
