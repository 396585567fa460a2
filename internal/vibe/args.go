// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vibe

import "strings"

// Flags VIBE takes a value list for.
const (
	PhenotypeFlag = "-p"
	DiseaseFlag   = "-m"
)

// Arguments repeats flag before every value: [flag v1 flag v2 ...]. An
// empty list, or one whose first value is empty, yields no arguments.
// Values are normalized with Normalize.
func Arguments(flag string, values []string) []string {
	if len(values) == 0 || values[0] == "" {
		return nil
	}

	args := make([]string, 0, 2*len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		args = append(args, flag, Normalize(flag, v))
	}
	return args
}

// Normalize rewrites an identifier to the lower-case "prefix:" form VIBE
// expects: "HP:0000008" becomes "hp:0000008" and "OMIM:154700" becomes
// "omim:154700". A bare number is given the prefix implied by flag ("hp"
// for -p, "omim" for -m); for other flags it is returned unchanged.
func Normalize(flag, value string) string {
	value = strings.TrimSpace(value)
	if prefix, id, ok := strings.Cut(value, ":"); ok {
		return strings.ToLower(prefix) + ":" + id
	}
	switch flag {
	case PhenotypeFlag:
		return "hp:" + value
	case DiseaseFlag:
		return "omim:" + value
	}
	return value
}
