package field

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func requiredRule(value, label string, _ Params) (Kind, string) {
	if strings.TrimSpace(value) == "" {
		return KindMissingRequiredValue, fmt.Sprintf("%s is required", label)
	}
	return KindNone, ""
}

func emailRule(value, label string, _ Params) (Kind, string) {
	if value == "" || emailPattern.MatchString(value) {
		return KindNone, ""
	}
	return KindInvalidFormat, fmt.Sprintf("%s must be a valid email", label)
}

func numericRule(value, label string, _ Params) (Kind, string) {
	if value == "" {
		return KindNone, ""
	}
	number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return KindInvalidFormat, fmt.Sprintf("%s must be a number", label)
	}
	return KindNone, ""
}

func oneOfRule(value, label string, params Params) (Kind, string) {
	if value == "" || len(params.Options) == 0 {
		return KindNone, ""
	}
	trimmed := strings.TrimSpace(value)
	for _, option := range params.Options {
		if option == trimmed {
			return KindNone, ""
		}
	}
	return KindInvalidFormat, fmt.Sprintf("%s must be one of: %s", label, strings.Join(params.Options, ", "))
}
