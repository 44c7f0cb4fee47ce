package validators

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// Built-in validator names.
const (
	NotEmpty     = "not_empty"
	StringLength = "string_length"
	EmailAddress = "email_address"
	Regex        = "regex"
	Between      = "between"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Builtin returns a registry pre-populated with the built-in validators.
func Builtin() *Registry {
	r := NewRegistry()
	r.MustRegister(NotEmpty, func(map[string]any) (Validator, error) {
		return Func{ValidatorName: NotEmpty, Fn: validateNotEmpty}, nil
	})
	r.MustRegister(StringLength, newStringLength)
	r.MustRegister(EmailAddress, func(map[string]any) (Validator, error) {
		return Func{ValidatorName: EmailAddress, Fn: validateEmail}, nil
	})
	r.MustRegister(Regex, newRegex)
	r.MustRegister(Between, newBetween)
	return r
}

func validateNotEmpty(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{"Value is required and can't be empty"}
	case string:
		if v == "" {
			return []string{"Value is required and can't be empty"}
		}
	}
	return nil
}

func validateEmail(value any) []string {
	s, ok := value.(string)
	if !ok || !emailPattern.MatchString(s) {
		return []string{"The input is not a valid email address"}
	}
	return nil
}

func newStringLength(options map[string]any) (Validator, error) {
	min, hasMin, err := intOption(options, "min")
	if err != nil {
		return nil, err
	}
	max, hasMax, err := intOption(options, "max")
	if err != nil {
		return nil, err
	}
	return Func{ValidatorName: StringLength, Fn: func(value any) []string {
		s, ok := value.(string)
		if !ok {
			return []string{"Invalid type given, string expected"}
		}
		length := utf8.RuneCountInString(s)
		var messages []string
		if hasMin && length < min {
			messages = append(messages, fmt.Sprintf("The input is less than %d characters long", min))
		}
		if hasMax && length > max {
			messages = append(messages, fmt.Sprintf("The input is more than %d characters long", max))
		}
		return messages
	}}, nil
}

func newRegex(options map[string]any) (Validator, error) {
	raw, ok := options["pattern"].(string)
	if !ok || raw == "" {
		return nil, fmt.Errorf("option pattern is required")
	}
	pattern, err := regexp.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return Func{ValidatorName: Regex, Fn: func(value any) []string {
		s, ok := value.(string)
		if !ok || !pattern.MatchString(s) {
			return []string{fmt.Sprintf("The input does not match the pattern %q", raw)}
		}
		return nil
	}}, nil
}

func newBetween(options map[string]any) (Validator, error) {
	min, hasMin, err := floatOption(options, "min")
	if err != nil {
		return nil, err
	}
	max, hasMax, err := floatOption(options, "max")
	if err != nil {
		return nil, err
	}
	return Func{ValidatorName: Between, Fn: func(value any) []string {
		n, ok := toFloat(value)
		if !ok {
			return []string{"Invalid type given, numeric value expected"}
		}
		if hasMin && n < min {
			return []string{fmt.Sprintf("The input is not between %v and %v", min, max)}
		}
		if hasMax && n > max {
			return []string{fmt.Sprintf("The input is not between %v and %v", min, max)}
		}
		return nil
	}}, nil
}

func intOption(options map[string]any, key string) (int, bool, error) {
	raw, ok := options[key]
	if !ok {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case float64:
		return int(v), true, nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false, fmt.Errorf("option %s: %w", key, err)
		}
		return n, true, nil
	default:
		return 0, false, fmt.Errorf("option %s: unsupported type %T", key, raw)
	}
}

func floatOption(options map[string]any, key string) (float64, bool, error) {
	raw, ok := options[key]
	if !ok {
		return 0, false, nil
	}
	n, ok := toFloat(raw)
	if !ok {
		if s, isStr := raw.(string); isStr {
			parsed, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, false, fmt.Errorf("option %s: %w", key, err)
			}
			return parsed, true, nil
		}
		return 0, false, fmt.Errorf("option %s: unsupported type %T", key, raw)
	}
	return n, true, nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
