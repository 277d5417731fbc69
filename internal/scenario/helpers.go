package scenario

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	scenarioIDMaxLength    = 64
	randomIDSuffixLength   = 8
	randomIDSuffixFallback = "abcdefgh"
)

var (
	scenarioIDPattern   = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$|^[a-z0-9]$`)
	nonAlphanumericExpr = regexp.MustCompile(`[^a-z0-9]+`)
)

// GenerateScenarioID converts a display name into a sanitized scenario ID.
func GenerateScenarioID(name string) string {
	id := SanitizeName(name)
	if id == "" {
		id = fmt.Sprintf("scenario-%s", randomIDSuffix(randomIDSuffixLength))
	}

	if len(id) > scenarioIDMaxLength {
		id = trimToLength(id, scenarioIDMaxLength)
	}

	if id == "" {
		id = fmt.Sprintf("scenario-%s", randomIDSuffix(randomIDSuffixLength))
	}

	return id
}

// ValidateScenarioID ensures the provided ID matches the allowed pattern.
func ValidateScenarioID(id string) error {
	if id == "" {
		return fmt.Errorf("scenario ID cannot be empty")
	}

	if len(id) > scenarioIDMaxLength {
		return fmt.Errorf("scenario ID %q is too long: maximum length is %d characters", id, scenarioIDMaxLength)
	}

	if !scenarioIDPattern.MatchString(id) {
		return fmt.Errorf("invalid scenario ID %q: must match %s", id, scenarioIDPattern.String())
	}

	return nil
}

// SanitizeName normalizes a display name into an identifier-friendly format.
func SanitizeName(name string) string {
	lowered := strings.ToLower(name)
	sanitized := nonAlphanumericExpr.ReplaceAllString(lowered, "-")
	sanitized = strings.Trim(sanitized, "-")

	if len(sanitized) > scenarioIDMaxLength {
		sanitized = trimToLength(sanitized, scenarioIDMaxLength)
	}

	return sanitized
}

// ParseAssignments converts `name=value` tokens into Inputs. Used by both
// the CLI argument form (`whatif set baseline x=5`) and the board's inline
// input editor.
func ParseAssignments(tokens []string) (Inputs, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no input assignments given")
	}

	inputs := make(Inputs, len(tokens))
	for _, token := range tokens {
		name, value, ok := strings.Cut(token, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q: expected name=value", token)
		}

		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid assignment %q: empty parameter name", token)
		}

		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid assignment %q: value is not numeric", token)
		}
		inputs[name] = parsed
	}
	return inputs, nil
}

func appendIDSuffix(base string, n int) string {
	suffix := fmt.Sprintf("-%d", n)
	if len(base)+len(suffix) > scenarioIDMaxLength {
		base = trimToLength(base, scenarioIDMaxLength-len(suffix))
	}
	return base + suffix
}

func randomIDSuffix(length int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	if length <= 0 {
		return ""
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return randomIDSuffixFallback
	}

	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}

	return string(buf)
}

func trimToLength(value string, length int) string {
	if len(value) <= length {
		return strings.Trim(value, "-")
	}

	trimmed := value[:length]
	return strings.Trim(trimmed, "-")
}
