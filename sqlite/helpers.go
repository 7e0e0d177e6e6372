package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// marshalKeyTerms serializes key terms to the JSON column form.
func marshalKeyTerms(terms []string) (string, error) {
	if len(terms) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(terms)
	if err != nil {
		return "", fmt.Errorf("failed to marshal key terms: %w", err)
	}
	return string(data), nil
}

// unmarshalKeyTerms deserializes the JSON key terms column.
func unmarshalKeyTerms(value string) ([]string, error) {
	if value == "" || value == "[]" {
		return nil, nil
	}
	var terms []string
	if err := json.Unmarshal([]byte(value), &terms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal key terms: %w", err)
	}
	return terms, nil
}
