package model

import (
	"fmt"
	"strings"
)

// Sex of the reference person. Unknown keeps both readings open.
type Sex int

const (
	SexUnknown Sex = -1
	SexFemale  Sex = 0
	SexMale    Sex = 1
)

func (s Sex) String() string {
	switch s {
	case SexMale:
		return "male"
	case SexFemale:
		return "female"
	default:
		return "unknown"
	}
}

// ParseSex accepts male/female/unknown, m/f, 1/0/-1 and the empty string
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "1":
		return SexMale, nil
	case "female", "f", "0":
		return SexFemale, nil
	case "", "unknown", "-1":
		return SexUnknown, nil
	default:
		return SexUnknown, fmt.Errorf("invalid sex %q (want male, female or unknown)", s)
	}
}

// Fact keys stored in a Facts map
const (
	FactCousinAgeRelative = "cousinAgeRelative"
	FactUserSex           = "userSex"

	factBrotherAgeOrder = "brotherAgeOrder"
	factSisterAgeOrder  = "sisterAgeOrder"
)

// Requirement keys a concept can declare or infer
const (
	RequireMaleSiblingAge   = "olderYoungerMaleSibling"
	RequireFemaleSiblingAge = "olderYoungerFemaleSibling"
	RequireCousinAge        = "cousinAgeRelativeToUser"
	RequireUserSex          = "userSex"
)

// Relative-age fact values
const (
	AgeOlder   = "older"
	AgeYounger = "younger"
)

// StepFactPrefix is the prefix of facts scoped to the chain position at index
func StepFactPrefix(index int) string {
	return fmt.Sprintf("step%d_", index+1)
}

// BrotherAgeOrderKey is the age-order fact key for an unknown-age brother at index
func BrotherAgeOrderKey(index int) string {
	return StepFactPrefix(index) + factBrotherAgeOrder
}

// SisterAgeOrderKey is the age-order fact key for an unknown-age sister at index
func SisterAgeOrderKey(index int) string {
	return StepFactPrefix(index) + factSisterAgeOrder
}

// Facts holds answers that disambiguate a chain. Helpers never mutate the receiver.
type Facts map[string]string

// Get returns the value for key, or "" when absent
func (f Facts) Get(key string) string {
	return f[key]
}

// Has reports whether key has a non-empty value
func (f Facts) Has(key string) bool {
	return f[key] != ""
}

// Clone returns an independent copy
func (f Facts) Clone() Facts {
	out := make(Facts, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// With returns a copy with key set to value
func (f Facts) With(key, value string) Facts {
	out := f.Clone()
	out[key] = value
	return out
}

// Without returns a copy with key removed
func (f Facts) Without(key string) Facts {
	out := f.Clone()
	delete(out, key)
	return out
}

// WithoutPrefix returns a copy without any key starting with prefix
func (f Facts) WithoutPrefix(prefix string) Facts {
	out := make(Facts, len(f))
	for k, v := range f {
		if !strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out
}

// ValidAge reports whether v is a relative-age fact value
func ValidAge(v string) bool {
	return v == AgeOlder || v == AgeYounger
}

// isAgeFact reports whether key holds a relative-age value
func isAgeFact(key string) bool {
	return key == FactCousinAgeRelative ||
		strings.HasSuffix(key, "_"+factBrotherAgeOrder) ||
		strings.HasSuffix(key, "_"+factSisterAgeOrder)
}

// ParseFact parses "key=value". Values of known keys are checked: age facts
// take older or younger, userSex takes anything ParseSex accepts.
func ParseFact(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid fact %q (want key=value)", s)
	}

	switch {
	case isAgeFact(key):
		value = strings.ToLower(value)
		if !ValidAge(value) {
			return "", "", fmt.Errorf("invalid fact %q: %s must be %s or %s", s, key, AgeOlder, AgeYounger)
		}
	case key == FactUserSex:
		sex, err := ParseSex(value)
		if err != nil {
			return "", "", fmt.Errorf("invalid fact %q: %w", s, err)
		}
		value = sex.String()
	}
	return key, value, nil
}
