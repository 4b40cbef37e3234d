package util

import (
	"fmt"
	"regexp"
)

// Node names become compose service names, container host names and
// directory names, so they are held to the compose service name grammar.
var nodeNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// ValidateNodeName reports why s cannot be used as a node name, or nil.
func ValidateNodeName(s string) error {
	if s == "" {
		return fmt.Errorf("name is empty")
	}
	if len(s) > 63 {
		return fmt.Errorf("name %q is longer than 63 characters", s)
	}
	if !nodeNamePattern.MatchString(s) {
		return fmt.Errorf("name %q may only contain letters, digits, '-' and '_' and must start with a letter or digit", s)
	}
	return nil
}
