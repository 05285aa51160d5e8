package pastebin

import (
	"net/url"
	"strings"
	"time"

	"github.com/zephyrtronium/twitchpaster/codeblock"
)

// Request is a paste to be created.
type Request struct {
	// Code is the paste contents.
	Code string
	// Format is the Pastebin syntax highlighting format.
	Format string
	// Title is the paste name.
	Title string
	// Expire is the paste lifetime. It is rounded up to the nearest lifetime
	// Pastebin supports; zero or negative means never.
	Expire time.Duration
}

// Expiry is the lifetime of pastes created from chat.
const Expiry = time.Hour

// Format creates a request for code written in chat. If lang is not a known
// Pastebin format, the paste is plain text.
func Format(code, lang, sender, channel string) Request {
	f := "text"
	if id, ok := codeblock.Lookup(lang); ok && codeblock.IsFormat(lang) {
		f = id
	}
	return Request{
		Code:   code,
		Format: f,
		Title:  sender + " - " + strings.TrimPrefix(channel, "#"),
		Expire: Expiry,
	}
}

// expiries are the paste lifetimes Pastebin accepts, shortest first.
var expiries = []struct {
	d    time.Duration
	code string
}{
	{10 * time.Minute, "10M"},
	{time.Hour, "1H"},
	{24 * time.Hour, "1D"},
	{7 * 24 * time.Hour, "1W"},
	{14 * 24 * time.Hour, "2W"},
	{30 * 24 * time.Hour, "1M"},
	{182 * 24 * time.Hour, "6M"},
	{365 * 24 * time.Hour, "1Y"},
}

func expireCode(d time.Duration) string {
	if d <= 0 {
		return "N"
	}
	for _, e := range expiries {
		if d <= e.d {
			return e.code
		}
	}
	return "N"
}

// form encodes the request as Pastebin API form fields.
func (r *Request) form(key string) url.Values {
	return url.Values{
		"api_option":            {"paste"},
		"api_dev_key":           {key},
		"api_paste_code":        {r.Code},
		"api_paste_name":        {r.Title},
		"api_paste_format":      {r.Format},
		"api_paste_private":     {"0"},
		"api_paste_expire_date": {expireCode(r.Expire)},
	}
}
