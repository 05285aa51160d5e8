package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/twitchpaster/links"
)

func testRobot(t *testing.T) *Robot {
	t.Helper()
	ctx := context.Background()
	robo := New()
	dir := t.TempDir()
	err := robo.SetSources(ctx,
		ChannelsCfg{File: filepath.Join(dir, "channels.json"), Default: []string{"#kessoku", "#sickhack"}},
		DBCfg{Links: filepath.Join(dir, "links.db")},
	)
	if err != nil {
		t.Fatalf("couldn't set sources: %v", err)
	}
	t.Cleanup(func() { robo.db.Close() })
	return robo
}

func TestAPIChannels(t *testing.T) {
	robo := testRobot(t)
	mux := http.NewServeMux()
	robo.routes(mux)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/channels", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("wrong status: want 200, got %d", w.Code)
	}
	var got struct {
		Data   []string `json:"data"`
		Status int      `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("couldn't decode response: %v", err)
	}
	if diff := cmp.Diff([]string{"#kessoku", "#sickhack"}, got.Data); diff != "" {
		t.Errorf("wrong channels (-want +got):\n%s", diff)
	}
}

func TestAPILinks(t *testing.T) {
	robo := testRobot(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	for i, u := range []string{"https://pastebin.com/a", "https://pastebin.com/b"} {
		l := links.Link{
			Channel: "#kessoku",
			URL:     u,
			User:    "bocchi",
			Time:    now.Add(time.Duration(i) * time.Second),
			Expires: now.Add(time.Hour),
		}
		if err := robo.links.Record(ctx, l); err != nil {
			t.Fatalf("couldn't record link: %v", err)
		}
	}
	mux := http.NewServeMux()
	robo.routes(mux)
	cases := []struct {
		name   string
		path   string
		status int
		urls   []string
	}{
		{"all", "/api/links/kessoku", http.StatusOK, []string{"https://pastebin.com/b", "https://pastebin.com/a"}},
		{"hash", "/api/links/%23Kessoku", http.StatusOK, []string{"https://pastebin.com/b", "https://pastebin.com/a"}},
		{"n", "/api/links/kessoku?n=1", http.StatusOK, []string{"https://pastebin.com/b"}},
		{"empty", "/api/links/sickhack", http.StatusOK, []string{}},
		{"bad-n", "/api/links/kessoku?n=x", http.StatusBadRequest, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", c.path, nil))
			if w.Code != c.status {
				t.Fatalf("wrong status: want %d, got %d", c.status, w.Code)
			}
			if c.status != http.StatusOK {
				return
			}
			var got struct {
				Data []apiLink `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("couldn't decode response: %v", err)
			}
			urls := []string{}
			for _, l := range got.Data {
				urls = append(urls, l.URL)
			}
			if diff := cmp.Diff(c.urls, urls); diff != "" {
				t.Errorf("wrong links (-want +got):\n%s", diff)
			}
		})
	}
}
