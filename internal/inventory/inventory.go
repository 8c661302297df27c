// Package inventory parses comma separated inventory lists.
package inventory

import (
	"sort"
	"strings"
	"unicode/utf8"
)

type Result struct {
	List  []string
	Count int
	// Freq maps each first character to the number of items starting with
	// it. Nil unless WithFreq was given.
	Freq map[string]int
}

type options struct {
	freq bool
}

type Option func(*options)

// WithFreq adds the first-character frequency table to the result.
func WithFreq() Option {
	return func(o *options) { o.freq = true }
}

// Parse splits input on commas, trims every item, drops empty ones and sorts
// the rest.
func Parse(input string, opts ...Option) Result {
	return ParseTokens([]string{input}, opts...)
}

// ParseTokens parses already split items. A single element is treated as an
// unsplit list.
func ParseTokens(tokens []string, opts ...Option) Result {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if len(tokens) == 1 {
		tokens = strings.Split(tokens[0], ",")
	}

	list := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok = strings.TrimSpace(tok); tok != "" {
			list = append(list, tok)
		}
	}
	sort.Strings(list)

	res := Result{List: list, Count: len(list)}
	if o.freq {
		res.Freq = make(map[string]int)
		for _, item := range list {
			r, _ := utf8.DecodeRuneInString(item)
			res.Freq[string(r)]++
		}
	}
	return res
}
