package tuning

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseSource reads a sectioned key/value file into c. Lines before the first
// section header belong to section. Keys of other sections are ignored;
// unknown keys and malformed values of our section are reported together,
// after every valid line has been applied.
func ParseSource(r io.Reader, section string, c *Config) error {
	var errs []error
	inSection := true
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(stripComment(sc.Text()))
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "%") {
			inSection = strings.EqualFold(strings.TrimSpace(line[1:]), section)
			continue
		}
		if !inSection {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			errs = append(errs, fmt.Errorf("line %d: missing '='", lineNo))
			continue
		}
		if err := c.Set(key, value); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", lineNo, err))
		}
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func stripComment(line string) string {
	if i := strings.IndexAny(line, "#;"); i >= 0 {
		return line[:i]
	}
	return line
}
