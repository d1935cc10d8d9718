package pongo

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("lowerfirst") {
		_ = pongo2.RegisterFilter("lowerfirst", filterLowerFirst)
	}
	if !pongo2.FilterExists("sanitize_html") {
		_ = pongo2.RegisterFilter("sanitize_html", filterSanitizeHTML)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterLowerFirst(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	t := in.String()

	var (
		firstNonWhitespaceIndex int
		firstRune               rune
		firstRuneSize           int
	)

	for i, r := range t {
		if !strings.ContainsRune(" \t\n\r", r) {
			firstNonWhitespaceIndex = i
			firstRune = r
			firstRuneSize = utf8.RuneLen(r)
			break
		}
	}

	if firstRune == 0 {
		return pongo2.AsValue(t), nil
	}

	prefix := t[:firstNonWhitespaceIndex]
	rest := t[firstNonWhitespaceIndex+firstRuneSize:]
	return pongo2.AsValue(prefix + strings.ToLower(string(firstRune)) + rest), nil
}

// filterSanitizeHTML strips unsafe markup from html column values and marks
// the result safe so it is not escaped again.
func filterSanitizeHTML(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsSafeValue(""), nil
	}
	cleaned := strings.TrimSpace(htmlSanitizer().Sanitize(in.String()))
	return pongo2.AsSafeValue(cleaned), nil
}

func htmlSanitizer() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		htmlPolicy = bluemonday.UGCPolicy()
	})
	return htmlPolicy
}
