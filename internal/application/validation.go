package application

import (
	"fmt"
	"strings"

	"photocat/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "dbPath" -> "database path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"dbPath":    "database path",
		"entryID":   "entry ID",
		"keyword":   "keyword",
		"target":    "target",
		"path":      "path",
		"indexKind": "index",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateUserKeyword applies the user policy for keyword edits.
// DUP and DUP? are derived by duplicate detection and can never be edited.
// CHANGED and DELETED are set by scans; users may clear them but not set them.
func ValidateUserKeyword(kw string, adding bool) error {
	if err := ValidateRequired("keyword", kw); err != nil {
		return err
	}

	norm := domain.NormalizeKeyword(kw)
	switch {
	case domain.IsDuplicateKeyword(norm):
		return &KeywordError{Keyword: norm, Reason: "is managed by duplicate detection"}
	case adding && domain.IsReservedKeyword(norm):
		return &KeywordError{Keyword: norm, Reason: "is set by scans and can only be removed"}
	}
	return nil
}
