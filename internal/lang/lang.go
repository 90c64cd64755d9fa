// Package lang holds the fixed set of languages the translation service
// accepts and the helpers the view uses to cycle and label them.
package lang

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Code is a two-letter language code as it appears in translate routes.
type Code string

const (
	English Code = "en"
	French  Code = "fr"
	Arabic  Code = "ar"
)

// Supported lists the languages in selector order.
var Supported = []Code{English, French, Arabic}

var englishNames = display.English.Languages()

// Parse accepts a code or BCP 47 tag ("fr", "fr-CA", "AR") and reduces it to
// a supported Code.
func Parse(input string) (Code, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("language code is empty")
	}
	tag, err := language.Parse(input)
	if err != nil {
		return "", fmt.Errorf("parse language %q: %w", input, err)
	}
	base, _ := tag.Base()
	code := Code(base.String())
	if !code.Supported() {
		return "", fmt.Errorf("language %q is not supported (want one of %s)", input, joinCodes(Supported))
	}
	return code, nil
}

// Supported reports whether the service offers routes for c.
func (c Code) Supported() bool {
	for _, candidate := range Supported {
		if candidate == c {
			return true
		}
	}
	return false
}

// Name returns the English display name, eg. "French".
func (c Code) Name() string {
	tag, err := language.Parse(string(c))
	if err != nil {
		return string(c)
	}
	if name := englishNames.Name(tag); name != "" {
		return name
	}
	return string(c)
}

// NativeName returns the name of the language in itself, eg. "français".
func (c Code) NativeName() string {
	tag, err := language.Parse(string(c))
	if err != nil {
		return string(c)
	}
	return display.Self.Name(tag)
}

// RightToLeft reports whether the language is written right to left.
func (c Code) RightToLeft() bool {
	return c == Arabic
}

// Next returns the language after c in selector order, wrapping around.
// Unknown codes restart at the first supported language.
func (c Code) Next() Code {
	for i, candidate := range Supported {
		if candidate == c {
			return Supported[(i+1)%len(Supported)]
		}
	}
	return Supported[0]
}

func (c Code) String() string {
	return string(c)
}

func joinCodes(codes []Code) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
