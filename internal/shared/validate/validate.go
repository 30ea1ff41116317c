// Package validate checks request inputs before they reach the
// pipeline.
package validate

import (
	"fmt"
	"net/url"
	"strings"
)

// MaxTargetLength bounds the target URL, matching common browser
// limits.
const MaxTargetLength = 2048

// MaxPromptLength bounds custom prompt templates.
const MaxPromptLength = 16 * 1024

// Target checks that a target is a fetchable absolute http(s) URL.
func Target(target string) error {
	if target == "" {
		return fmt.Errorf("target parameter required")
	}
	if len(target) > MaxTargetLength {
		return fmt.Errorf("target exceeds %d characters", MaxTargetLength)
	}

	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("target is not a valid URL: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("target scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("target has no host")
	}
	return nil
}

// Prompt checks a custom prompt template. Empty is fine, the default
// template is used instead.
func Prompt(prompt string) error {
	if len(prompt) > MaxPromptLength {
		return fmt.Errorf("prompt exceeds %d bytes", MaxPromptLength)
	}
	return nil
}
