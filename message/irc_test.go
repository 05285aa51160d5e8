package message_test

import (
	"io"
	"strings"
	"testing"
	"time"

	"gitlab.com/zephyrtronium/tmi"

	"github.com/zephyrtronium/twitchpaster/message"
)

func TestFromTMI(t *testing.T) {
	cases := []struct {
		name  string
		msg   string
		id    string
		to    string
		login string
		disp  string
		text  string
		time  time.Time
	}{
		{
			name:  "regular",
			msg:   `@badge-info=;badges=;client-nonce=eb10a5865f1231b6e96d6ae2dbcecdb4;color=#B22222;display-name=Someone;emotes=;first-msg=0;flags=;id=a74eb158-9732-4e6f-9150-2648cdf3c902;mod=0;returning-chatter=0;room-id=12345678;subscriber=0;tmi-sent-ts=1662882968379;turbo=0;user-id=123456789;user-type= :someone!someone@someone.tmi.twitch.tv PRIVMSG #channel :` + "```SELECT 1```",
			id:    "a74eb158-9732-4e6f-9150-2648cdf3c902",
			to:    "#channel",
			login: "someone",
			disp:  "Someone",
			text:  "```SELECT 1```",
			time:  time.UnixMilli(1662882968379),
		},
		{
			name:  "mod",
			msg:   `@badge-info=;badges=moderator/1;color=#1E90FF;display-name=aMod;emotes=;first-msg=0;flags=;id=2a9bb533-2837-48d0-8aba-032f844c91f6;mod=1;returning-chatter=0;room-id=12345678;subscriber=0;tmi-sent-ts=1662887850257;turbo=0;user-id=87654321;user-type=mod :amod!amod@amod.tmi.twitch.tv PRIVMSG #channel :!pastebin lastlink`,
			id:    "2a9bb533-2837-48d0-8aba-032f844c91f6",
			to:    "#channel",
			login: "amod",
			disp:  "aMod",
			text:  "!pastebin lastlink",
			time:  time.UnixMilli(1662887850257),
		},
		{
			name:  "broadcaster",
			msg:   `@badge-info=;badges=broadcaster/1;color=#0000FF;display-name=Channel;emotes=;first-msg=0;flags=;id=d2129ccd-0763-434c-bd00-7354bfe1a781;mod=0;returning-chatter=0;room-id=12345678;subscriber=0;tmi-sent-ts=1662885432414;turbo=0;user-id=12345678;user-type= :channel!channel@channel.tmi.twitch.tv PRIVMSG #channel :!pastebin leave`,
			id:    "d2129ccd-0763-434c-bd00-7354bfe1a781",
			to:    "#channel",
			login: "channel",
			disp:  "Channel",
			text:  "!pastebin leave",
			time:  time.UnixMilli(1662885432414),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tm, err := tmi.Parse(strings.NewReader(c.msg + "\r\n"))
			if err != nil && err != io.EOF {
				panic(err)
			}
			msg := message.FromTMI(tm)
			if got := msg.ID; got != c.id {
				t.Errorf("wrong id: want %q, got %q", c.id, got)
			}
			if got := msg.To; got != c.to {
				t.Errorf("wrong to: want %q, got %q", c.to, got)
			}
			if got := msg.Login; got != c.login {
				t.Errorf("wrong login: want %q, got %q", c.login, got)
			}
			if got := msg.DisplayName(); got != c.disp {
				t.Errorf("wrong display name: want %q, got %q", c.disp, got)
			}
			if got := msg.Text; got != c.text {
				t.Errorf("wrong text: want %q, got %q", c.text, got)
			}
			if got := msg.Time(); !got.Equal(c.time) {
				t.Errorf("wrong time: want %v, got %v", c.time, got)
			}
		})
	}
}

func TestToTMI(t *testing.T) {
	m := message.ToTMI(message.Format("bocchi", "#kessoku", "@%s, %s", "ryo", "hello"))
	if m.Command != "PRIVMSG" {
		t.Errorf("wrong command: want PRIVMSG, got %q", m.Command)
	}
	if got := m.To(); got != "#kessoku" {
		t.Errorf("wrong target: want #kessoku, got %q", got)
	}
	if m.Trailing != "@ryo, hello" {
		t.Errorf("wrong text: want %q, got %q", "@ryo, hello", m.Trailing)
	}
	if got, _ := m.Tag("reply-parent-msg-id"); got != "bocchi" {
		t.Errorf("wrong reply parent: want %q, got %q", "bocchi", got)
	}
	n := message.ToTMI(message.Sent{To: "#kessoku", Text: "hi"})
	if n.Tags != "" {
		t.Errorf("non-reply has tags %q", n.Tags)
	}
}
