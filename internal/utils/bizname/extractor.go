// Package bizname derives a canonical business name from the inconsistently
// formatted inputs that arrive with a transaction export: the account name
// embedded in the file, or failing that, the filename itself.
package bizname

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

var (
	separatorPattern  = regexp.MustCompile(`[-_]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	// Date-like tokens removed from filenames: bare years, year-month,
	// year-month-day, day-month-year runs, and month names with an optional
	// attached year ("Jan2024", "jan 2024").
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b\d{4}([-_/ ]\d{1,2}([-_/ ]\d{1,2})?)?\b`),
		regexp.MustCompile(`(?i)\b\d{1,2}([-_/ ]\d{1,2})?[-_/ ]\d{4}\b`),
		regexp.MustCompile(`(?i)\b(jan(uary)?|feb(ruary)?|mar(ch)?|apr(il)?|may|jun(e)?|jul(y)?|aug(ust)?|sep(t(ember)?)?|oct(ober)?|nov(ember)?|dec(ember)?)([-_ ]?\d{2,4})?\b`),
	}

	// Filler tokens that say nothing about the business identity.
	stopWordPattern = regexp.MustCompile(`(?i)\b(transactions?|data|export|statement|file|bank|feed|account)\b`)

	// Banking boilerplate stripped from account names, longest phrases first
	// so "current account" goes before the bare "current".
	accountTermPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bcurrent\s+account\b`),
		regexp.MustCompile(`(?i)\bbusiness\s+account\b`),
		regexp.MustCompile(`(?i)\bsavings\s+account\b`),
		regexp.MustCompile(`(?i)\bchecking\s+account\b`),
		regexp.MustCompile(`(?i)\bcompany\s+account\b`),
		regexp.MustCompile(`(?i)\baccount\b`),
		regexp.MustCompile(`(?i)\bcurrent\b`),
		regexp.MustCompile(`(?i)\bsavings\b`),
		regexp.MustCompile(`(?i)\bchecking\b`),
		regexp.MustCompile(`(?i)\bbusiness\b`),
		regexp.MustCompile(`(?i)\bcompany\b`),
		regexp.MustCompile(`(?i)\bbus\b`),
		regexp.MustCompile(`(?i)\bcurr\b`),
		regexp.MustCompile(`(?i)\bacc\b`),
		regexp.MustCompile(`(?i)\bsort\s*code\b`),
		regexp.MustCompile(`(?i)\biban\b`),
		regexp.MustCompile(`(?i)\bswift\b`),
		regexp.MustCompile(`-\s*\d+\b`),
		regexp.MustCompile(`\(\d+\)`),
		regexp.MustCompile(`\[\d+\]`),
		regexp.MustCompile(`\b\d{8,}\b`), // account numbers
	}
)

// FromFilename extracts a business name from an export filename. The result
// is never empty: when stripping leaves nothing, the raw file stem is
// title-cased instead.
func FromFilename(filename string) string {
	stem := stripExtension(filepath.Base(filename))

	// Separators become spaces before date stripping so that tokens like
	// "cafe_2024-01-15" present word boundaries to the date patterns.
	name := separatorPattern.ReplaceAllString(stem, " ")
	name = removeDateTokens(name)
	name = stopWordPattern.ReplaceAllString(name, " ")
	name = collapseWhitespace(name)

	if name == "" {
		return titleCase(collapseWhitespace(separatorPattern.ReplaceAllString(stem, " ")))
	}
	return titleCase(name)
}

// FromAccountName cleans a bank account name down to the business it belongs
// to. When stripping leaves fewer than two characters, the original name is
// returned title-cased; the extractor never produces an empty name.
func FromAccountName(accountName string) string {
	original := collapseWhitespace(accountName)
	if original == "" {
		return ""
	}

	name := original
	for _, pattern := range accountTermPatterns {
		name = pattern.ReplaceAllString(name, " ")
	}
	name = separatorPattern.ReplaceAllString(name, " ")
	name = collapseWhitespace(name)
	name = strings.Trim(name, " .,;:()[]{}")

	if len(name) < 2 {
		return titleCase(original)
	}
	return titleCase(name)
}

func stripExtension(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

func removeDateTokens(s string) string {
	for _, pattern := range datePatterns {
		s = pattern.ReplaceAllString(s, " ")
	}
	return s
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// titleCase capitalizes the first letter of each word and lowers the rest,
// matching how operators expect business names to display.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
