// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRegExpMatcher(t *testing.T) {
	cases := []struct {
		expr    string
		matcher Matcher
	}{
		{"", TRUE()},
		{"^", TRUE()},
		{"$", TRUE()},
		{"^$", stringFullMatcher("")},
		{"$^", stringFullMatcher("")},
		{"abc", stringPartialMatcher("abc")},
		{"^abc", stringPrefixMatcher("abc")},
		{"abc$", stringSuffixMatcher("abc")},
		{"^abc$", stringFullMatcher("abc")},
		{`a\.c`, stringPartialMatcher("a.c")},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			m, err := NewRegExpMatcher(c.expr)
			assert.NoError(t, err)
			assert.Equal(t, c.matcher, m)
		})
	}
}

func TestNewRegExpMatcher_NotOptimized(t *testing.T) {
	cases := []string{
		"a.c",
		"a+b",
		"a|b",
		`a\d`,
		"[abc]",
		"(abc)",
	}
	for _, expr := range cases {
		t.Run(expr, func(t *testing.T) {
			m, err := NewRegExpMatcher(expr)
			assert.NoError(t, err)
			assert.IsType(t, &regexp.Regexp{}, m)
		})
	}
}

func TestNewRegExpMatcher_BadSyntax(t *testing.T) {
	m, err := NewRegExpMatcher("(abc")
	assert.Error(t, err)
	assert.Nil(t, m)
}

func TestRegExpMatch_Match(t *testing.T) {
	m, err := NewRegExpMatcher("[0-9]+")
	assert.NoError(t, err)

	assert.True(t, m.Match([]byte("a1b")))
	assert.True(t, m.MatchString("a1b"))
	assert.False(t, m.Match([]byte("abc")))
	assert.False(t, m.MatchString("abc"))
}
