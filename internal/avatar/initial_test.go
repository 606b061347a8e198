package avatar

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestInitial(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Maya Chen", "M"},
		{"ada lovelace", "A"},
		{"  trimmed  ", "T"},
		{"", "U"},
		{"   ", "U"},
		{"Ülrich", "Ü"},
	}

	for _, tc := range cases {
		if got := Initial(tc.name); got != tc.want {
			t.Errorf("Initial(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestColorForIsDeterministic(t *testing.T) {
	for _, name := range []string{"Maya Chen", "User", "", "日本語"} {
		first := ColorFor(name)
		for i := 0; i < 10; i++ {
			if got := ColorFor(name); got != first {
				t.Fatalf("ColorFor(%q) unstable: %q then %q", name, first, got)
			}
		}
	}
}

// Fixture values computed with the web client's hash so both clients
// keep rendering the same color per account.
func TestColorForMatchesWebClient(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Maya Chen", "#ef4444"},
		{"User", "#8b5cf6"},
		{"J", "#ef4444"},
		{"Ada Lovelace", "#f59e0b"},
		{"user@example.com", "#f97316"},
		{"José", "#f59e0b"},
	}

	for _, tc := range cases {
		if got := ColorFor(tc.name); got != tc.want {
			t.Errorf("ColorFor(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestColorForStaysInPalette(t *testing.T) {
	inPalette := func(c string) bool {
		for _, p := range Palette {
			if p == c {
				return true
			}
		}
		return false
	}

	for _, name := range []string{"", "a", "zz", "Some Very Long Display Name Indeed", "𝔘nicode"} {
		if c := ColorFor(name); !inPalette(c) {
			t.Errorf("ColorFor(%q) = %q, not in palette", name, c)
		}
	}
}

func TestDataURI(t *testing.T) {
	uri := DataURI("M", "#ef4444", 32)

	const prefix = "data:image/svg+xml;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("uri prefix = %q", uri[:min(len(uri), 30)])
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("decoding payload: %v", err)
	}

	svg := string(raw)
	for _, want := range []string{`width="32"`, `fill="#ef4444"`, `font-size="16"`, ">M</text>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q:\n%s", want, svg)
		}
	}
}

func TestForName(t *testing.T) {
	initial, color, uri := ForName("Maya Chen", 40)
	if initial != "M" || color != "#ef4444" {
		t.Fatalf("ForName = (%q, %q)", initial, color)
	}
	if uri == "" {
		t.Fatal("ForName returned empty uri")
	}
}
