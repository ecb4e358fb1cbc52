package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseRoster reads a newline-separated list of player names, trimmed and
// lower-cased for matching. Blank lines are ignored.
func ParseRoster(r io.Reader) ([]string, error) {
	var roster []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		roster = append(roster, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return roster, nil
}
