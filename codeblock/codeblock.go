// Package codeblock recognizes code blocks written in chat messages.
//
// Chat messages can't contain literal newlines, so a backslash inside a code
// block stands in for a line break.
package codeblock

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Block is a code block extracted from a chat message.
type Block struct {
	// Raw is the complete message the block was extracted from.
	Raw string
	// Lang is the Pastebin format named at the start of the block.
	// It is the empty string if the block didn't name one.
	Lang string
	// Body is the code with fences removed and line breaks restored.
	Body string
}

// maxFence is the longest fence recognized at either end of a block.
const maxFence = 3

// Classify determines whether msg is a code block and extracts its contents
// if so. The opening and closing fences may be one to three backticks each
// and need not have the same length.
func Classify(msg string) (Block, bool) {
	open := fence(msg, strings.HasPrefix)
	if open == 0 {
		return Block{}, false
	}
	rest := msg[open:]
	end := fence(rest, strings.HasSuffix)
	if end == 0 {
		return Block{}, false
	}
	inner := rest[:len(rest)-end]
	var lang string
	if tok := token(inner); tok != "" {
		if f, ok := Lookup(tok); ok && strings.TrimSpace(restore(inner[len(tok):])) != "" {
			lang = f
			inner = inner[len(tok):]
		}
	}
	body := strings.TrimSpace(restore(inner))
	if body == "" {
		return Block{}, false
	}
	return Block{Raw: msg, Lang: lang, Body: body}, true
}

// fence returns the length of the backtick fence at one end of s as
// determined by has.
func fence(s string, has func(s, fence string) bool) int {
	for n := maxFence; n > 0; n-- {
		if has(s, strings.Repeat("`", n)) {
			return n
		}
	}
	return 0
}

// token returns the leading word of s. A word is made of letters, digits,
// and the characters _+#- which appear in format names like c++ and cpp-qt.
func token(s string) string {
	k := strings.IndexFunc(s, func(r rune) bool {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return false
		case r == '_', r == '+', r == '#', r == '-':
			return false
		}
		return true
	})
	if k < 0 {
		return s
	}
	return s[:k]
}

// restore converts line break placeholders into newlines.
func restore(s string) string {
	return strings.ReplaceAll(s, `\`, "\n")
}

func fold(s string) string {
	return cases.Fold().String(s)
}
