package query

import (
	"fmt"
	"regexp"
	"strings"
)

// sortPattern accepts a single column name with an optional direction,
// separated by a space or a '+' (the URL-decoded form of an encoded space).
// Anything else is rejected, which is what keeps ORDER BY injection out:
// the sort expression is the only request value spliced into SQL text.
var sortPattern = regexp.MustCompile(`(?i)^([a-z_]+)(?:[ +](asc|desc))?$`)

// OrderBy validates the client-supplied sort expression and returns the
// ORDER BY clause to splice into the select statement. A blank expression
// falls back to the endpoint default, which is hard-coded server text and
// may therefore name several columns. The column name keeps its case; the
// direction is normalized to upper case and defaults to ASC.
func OrderBy(raw, fallback string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if fallback == "" {
			return "", nil
		}
		return " ORDER BY " + fallback, nil
	}
	m := sortPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", fmt.Errorf("invalid sort expression %q", raw)
	}
	direction := "ASC"
	if m[2] != "" {
		direction = strings.ToUpper(m[2])
	}
	return fmt.Sprintf(" ORDER BY %s %s", m[1], direction), nil
}
