package service

import "strings"

// sanitizeString trims surrounding whitespace from user input. Name keys are
// normalised further by dataset.NameKey.
func sanitizeString(value string) string {
	return strings.TrimSpace(value)
}
