package debug

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseCategories(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]bool
	}{
		{"empty", "", map[string]bool{}},
		{"single", "portainer", map[string]bool{"portainer": true}},
		{"multiple", "portainer,tools", map[string]bool{"portainer": true, "tools": true}},
		{"all", "all", map[string]bool{"all": true}},
		{"with spaces", " portainer , tools ", map[string]bool{"portainer": true, "tools": true}},
		{"uppercase normalized", "PORTAINER,Tools", map[string]bool{"portainer": true, "tools": true}},
		{"empty segments", "portainer,,tools", map[string]bool{"portainer": true, "tools": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCategories(tt.input)
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("got[%q] = %v, want %v", k, got[k], v)
				}
			}
			if len(got) != len(tt.want) {
				t.Errorf("len(got) = %d, want %d", len(got), len(tt.want))
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("portainer,tools")

	if !Enabled("portainer") {
		t.Error("portainer should be enabled")
	}
	if !Enabled("tools") {
		t.Error("tools should be enabled")
	}
	if Enabled("auth") {
		t.Error("auth should not be enabled")
	}
}

func TestEnabled_All(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("all")

	for _, cat := range []string{"portainer", "transport", "anything"} {
		if !Enabled(cat) {
			t.Errorf("%s should be enabled via 'all'", cat)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"TRACE", LevelTrace},
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate short = %q, want %q", got, "short")
	}
	if got := Truncate("this is a long string", 10); got != "this is a ..." {
		t.Errorf("Truncate long = %q, want %q", got, "this is a ...")
	}
}

func TestInitWriter(t *testing.T) {
	origCats := categories
	origLogger := slog.Default()
	defer func() {
		categories = origCats
		slog.SetDefault(origLogger)
	}()
	t.Setenv("PORTAINER_MCP_DEBUG", "")
	t.Setenv("PORTAINER_MCP_LOG_LEVEL", "")

	var buf bytes.Buffer
	InitWriter(&buf, "portainer", "DEBUG")

	Log("portainer", "remote request", "path", "/api/endpoints/1/docker/info")
	Log("tools", "should be filtered")

	out := buf.String()
	if !strings.Contains(out, "remote request") {
		t.Errorf("output missing enabled category message: %q", out)
	}
	if strings.Contains(out, "should be filtered") {
		t.Errorf("output contains disabled category message: %q", out)
	}
}

func TestInitWriter_EnvOverridesConfig(t *testing.T) {
	origCats := categories
	origLogger := slog.Default()
	defer func() {
		categories = origCats
		slog.SetDefault(origLogger)
	}()
	t.Setenv("PORTAINER_MCP_DEBUG", "auth")
	t.Setenv("PORTAINER_MCP_LOG_LEVEL", "ERROR")

	var buf bytes.Buffer
	InitWriter(&buf, "portainer", "DEBUG")

	if Enabled("portainer") {
		t.Error("config category should be replaced by env")
	}
	if !Enabled("auth") {
		t.Error("env category should be enabled")
	}
	if slog.Default().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("INFO should be disabled at ERROR level")
	}
}

func TestLog_DisabledCategory(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("")

	// Should not panic or produce output.
	Log("portainer", "test message", "key", "value")
	Trace("portainer", "trace message", "key", "value")
}
