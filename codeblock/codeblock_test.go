package codeblock_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/twitchpaster/codeblock"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want codeblock.Block
		ok   bool
	}{
		{"empty", "", codeblock.Block{}, false},
		{"plain", "hello world", codeblock.Block{}, false},
		{"open-only", "```hello", codeblock.Block{}, false},
		{"close-only", "hello```", codeblock.Block{}, false},
		{"inside", "look ```hello``` here", codeblock.Block{}, false},
		{"fences-only", "``````", codeblock.Block{}, false},
		{"tick", "`", codeblock.Block{}, false},
		{"blank", "```   ```", codeblock.Block{}, false},
		{
			name: "triple",
			in:   "```hello```",
			want: codeblock.Block{Raw: "```hello```", Body: "hello"},
			ok:   true,
		},
		{
			name: "single",
			in:   "`x := 1`",
			want: codeblock.Block{Raw: "`x := 1`", Body: "x := 1"},
			ok:   true,
		},
		{
			name: "mismatched",
			in:   "```SELECT 1`",
			want: codeblock.Block{Raw: "```SELECT 1`", Body: "SELECT 1"},
			ok:   true,
		},
		{
			name: "sql",
			in:   "```SELECT 1```",
			want: codeblock.Block{Raw: "```SELECT 1```", Body: "SELECT 1"},
			ok:   true,
		},
		{
			name: "lang-alias",
			in:   "```js\\foo\\bar```",
			want: codeblock.Block{Raw: "```js\\foo\\bar```", Lang: "javascript", Body: "foo\nbar"},
			ok:   true,
		},
		{
			name: "lang-space",
			in:   "```go fmt.Println(1)```",
			want: codeblock.Block{Raw: "```go fmt.Println(1)```", Lang: "go", Body: "fmt.Println(1)"},
			ok:   true,
		},
		{
			name: "lang-case",
			in:   "```Python print(1)```",
			want: codeblock.Block{Raw: "```Python print(1)```", Lang: "python", Body: "print(1)"},
			ok:   true,
		},
		{
			name: "lang-glued",
			in:   "```jsfoo\\bar```",
			want: codeblock.Block{Raw: "```jsfoo\\bar```", Body: "jsfoo\nbar"},
			ok:   true,
		},
		{
			name: "lang-punct",
			in:   "```go(x)```",
			want: codeblock.Block{Raw: "```go(x)```", Lang: "go", Body: "(x)"},
			ok:   true,
		},
		{
			name: "lang-symbols",
			in:   "```c++ int x;```",
			want: codeblock.Block{Raw: "```c++ int x;```", Lang: "cpp", Body: "int x;"},
			ok:   true,
		},
		{
			name: "lang-is-code",
			in:   "```go```",
			want: codeblock.Block{Raw: "```go```", Body: "go"},
			ok:   true,
		},
		{
			name: "unknown-lang",
			in:   "```bocchi rock```",
			want: codeblock.Block{Raw: "```bocchi rock```", Body: "bocchi rock"},
			ok:   true,
		},
		{
			name: "long-fence",
			in:   "````x````",
			want: codeblock.Block{Raw: "````x````", Body: "`x`"},
			ok:   true,
		},
		{
			name: "newlines",
			in:   "```int main() {\\  return 0;\\}```",
			want: codeblock.Block{Raw: "```int main() {\\  return 0;\\}```", Body: "int main() {\n  return 0;\n}"},
			ok:   true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := codeblock.Classify(c.in)
			if ok != c.ok {
				t.Errorf("wrong codeblockness for %q: want %t, got %t", c.in, c.ok, ok)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("wrong block for %q (-want +got):\n%s", c.in, diff)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	cases := []struct {
		tag  string
		want string
		ok   bool
	}{
		{"go", "go", true},
		{"GO", "go", true},
		{"golang", "go", true},
		{"c++", "cpp", true},
		{"text", "text", true},
		{"4cs", "4cs", true},
		{"bocchi", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := codeblock.Lookup(c.tag)
		if got != c.want || ok != c.ok {
			t.Errorf("wrong lookup for %q: want (%q, %t), got (%q, %t)", c.tag, c.want, c.ok, got, ok)
		}
	}
}

func TestIsFormat(t *testing.T) {
	for _, f := range codeblock.Formats {
		if !codeblock.IsFormat(f) {
			t.Errorf("%q is not a format", f)
		}
	}
	if codeblock.IsFormat("js") {
		t.Errorf("alias js is a format")
	}
}
