package scanner

import (
	"regexp"
	"strings"
)

// nonAlnumPattern strips everything that is not a letter or digit.
var nonAlnumPattern = regexp.MustCompile(`[^A-Za-z0-9]+`)

// slugPattern collapses runs of non-alphanumerics into a single hyphen.
var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// NameCandidates derives the ordered, de-duplicated set of plausible
// on-disk names for an application. Transforms cover the original casing
// and the lower-cased form, with whitespace stripped, hyphenated and
// underscored, plus a hyphen slug and a compact alphanumeric token.
func NameCandidates(appName string) []string {
	lower := strings.ToLower(appName)
	slug := strings.Trim(slugPattern.ReplaceAllString(lower, "-"), "-")
	compact := compactToken(appName)

	return uniqueNonEmpty([]string{
		appName,
		StripAppSuffix(appName),
		lower,
		StripAppSuffix(lower),
		strings.ReplaceAll(appName, " ", ""),
		strings.ReplaceAll(lower, " ", ""),
		strings.ReplaceAll(appName, " ", "-"),
		strings.ReplaceAll(lower, " ", "-"),
		strings.ReplaceAll(appName, " ", "_"),
		strings.ReplaceAll(lower, " ", "_"),
		strings.ReplaceAll(slug, "-", ""),
		slug,
		compact,
	})
}

// BundleCandidates derives reverse-domain bundle identifier guesses from an
// application name and its name candidates. Falls back to the compact token
// or the name candidates when the derived set would be empty.
func BundleCandidates(appName string, nameCandidates []string) []string {
	lower := strings.ToLower(appName)
	slug := strings.Trim(slugPattern.ReplaceAllString(lower, "-"), "-")
	compact := compactToken(appName)

	raw := []string{
		compact,
		strings.ReplaceAll(slug, "-", "."),
	}
	if compact != "" {
		raw = append(raw, "com."+compact)
	}
	for _, candidate := range nameCandidates {
		if strings.HasPrefix(candidate, "com.") {
			raw = append(raw, candidate)
		}
	}
	for _, candidate := range nameCandidates {
		if candidate != "" && !strings.HasPrefix(candidate, "com.") {
			raw = append(raw, "com."+candidate)
		}
	}

	candidates := uniqueNonEmpty(raw)
	if len(candidates) == 0 {
		if compact != "" {
			return []string{compact}
		}
		return uniqueNonEmpty(nameCandidates)
	}
	return candidates
}

// compactToken lower-cases the name and strips all non-alphanumerics.
// A name made entirely of punctuation degrades to the lower-cased name
// with spaces removed.
func compactToken(appName string) string {
	normalized := nonAlnumPattern.ReplaceAllString(appName, "")
	if normalized != "" {
		return strings.ToLower(normalized)
	}
	return strings.ReplaceAll(strings.ToLower(appName), " ", "")
}

// StripAppSuffix removes a trailing ".app" regardless of case.
func StripAppSuffix(value string) string {
	if strings.HasSuffix(strings.ToLower(value), ".app") {
		return value[:len(value)-len(".app")]
	}
	return value
}

// uniqueNonEmpty trims entries, drops empties and exact duplicates, and
// preserves first-seen order.
func uniqueNonEmpty(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	ordered := make([]string, 0, len(values))
	for _, raw := range values {
		cleaned := strings.TrimSpace(raw)
		if cleaned == "" {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		ordered = append(ordered, cleaned)
	}
	return ordered
}
