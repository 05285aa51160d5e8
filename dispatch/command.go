package dispatch

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zephyrtronium/twitchpaster/command"
)

// parseCommand checks whether text is a command with the given prefix and
// returns the text following the prefix.
func parseCommand(prefix, text string) (string, bool) {
	text = strings.TrimSpace(text)
	if len(text) < len(prefix) || !strings.EqualFold(text[:len(prefix)], prefix) {
		return "", false
	}
	text = text[len(prefix):]
	r, _ := utf8.DecodeRuneInString(text)
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		// The prefix is a prefix of a word.
		return "", false
	}
	k := strings.IndexFunc(text, unicode.IsSpace)
	if k < 0 {
		k = len(text)
	}
	return strings.TrimSpace(text[k:]), true
}

type twitchCommand struct {
	parse *regexp.Regexp
	fn    command.Func
	name  string
}

func findTwitch(cmds []twitchCommand, text string) (*twitchCommand, map[string]string) {
	for i := range cmds {
		c := &cmds[i]
		u := c.parse.FindStringSubmatch(text)
		switch len(u) {
		case 0:
			continue
		case 1:
			return c, nil
		default:
			m := make(map[string]string, len(u)-1)
			s := c.parse.SubexpNames()
			for k, v := range u[1:] {
				m[s[k+1]] = v
			}
			return c, m
		}
	}
	return nil, nil
}

var twitchAny = []twitchCommand{
	{
		parse: regexp.MustCompile(`(?i)^join(?:\s|$)`),
		fn:    command.Join,
		name:  "join",
	},
	{
		parse: regexp.MustCompile(`(?i)^leave(?:\s|$)`),
		fn:    command.Leave,
		name:  "leave",
	},
	{
		parse: regexp.MustCompile(`(?i)^lastlink(?:\s|$)`),
		fn:    command.LastLink,
		name:  "lastlink",
	},
}
