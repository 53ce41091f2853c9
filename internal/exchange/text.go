package exchange

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxNameLength    = 80
	maxConceptLength = 1000

	slugAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
	slugSuffixSize = 10
)

// sanitize trims s, collapses whitespace runs (including newlines) into one
// space and normalizes to NFC.
func sanitize(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// cleanName sanitizes a display name and enforces its limits.
func cleanName(name string) (string, error) {
	name = sanitize(name)
	if name == "" {
		return "", fmt.Errorf("%w: cannot be empty", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidName, maxNameLength)
	}
	return name, nil
}

// cleanConcept trims a concept and enforces its limits. Inner newlines are kept.
func cleanConcept(text string) (string, error) {
	text = norm.NFC.String(strings.TrimSpace(text))
	if text == "" {
		return "", fmt.Errorf("%w: cannot be empty", ErrInvalidConcept)
	}
	if utf8.RuneCountInString(text) > maxConceptLength {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidConcept, maxConceptLength)
	}
	return text, nil
}

// slugify lowercases s, strips diacritics and punctuation, and joins words with dashes.
func slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// newToken returns a URL-safe, unguessable participant token.
func newToken() (string, error) {
	token, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// newEventSlug returns the slugified name with a random suffix so public
// links cannot be guessed from the event name.
func newEventSlug(name string) (string, error) {
	suffix, err := gonanoid.Generate(slugAlphabet, slugSuffixSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate slug: %w", err)
	}
	if base := slugify(name); base != "" {
		return base + "-" + suffix, nil
	}
	return suffix, nil
}
