package lango_test

import (
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/YusufAbdelaziz/lango"
	"github.com/YusufAbdelaziz/lango/fs"
	"github.com/YusufAbdelaziz/lango/langotest"
	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	fsys := fs.FromIOFS(fstest.MapFS{
		"full.toml": {Data: []byte(`
log_level = "debug"
prompt = "lango> "

[natives]
disabled = ["clock"]
`)},
		"partial.toml": {Data: []byte(`prompt = ">> "`)},
		"unknown.toml": {Data: []byte(`colour = "red"`)},
		"level.toml":   {Data: []byte(`log_level = "loud"`)},
		"broken.toml":  {Data: []byte(`prompt = `)},
	})

	tests := []struct {
		name    string
		path    string
		want    *lango.Config
		wantErr string
	}{
		{name: "no path", path: "", want: lango.DefaultConfig()},
		{name: "missing file", path: "nope.toml", want: lango.DefaultConfig()},
		{
			name: "all keys",
			path: "full.toml",
			want: &lango.Config{LogLevel: "debug", Prompt: "lango> ", Natives: lango.NativesConfig{Disabled: []string{"clock"}}},
		},
		{name: "unset keys keep defaults", path: "partial.toml", want: &lango.Config{LogLevel: "warn", Prompt: ">> "}},
		{name: "unknown key", path: "unknown.toml", wantErr: "unknown keys colour"},
		{name: "bad level", path: "level.toml", wantErr: `invalid log_level "loud"`},
		{name: "syntax error", path: "broken.toml", wantErr: "decoding config broken.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lango.LoadConfig(fsys, tt.path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("LoadConfig() error got=%v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfig_Level(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelWarn,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"error": slog.LevelError,
	} {
		cfg := &lango.Config{LogLevel: in}
		got, err := cfg.Level()
		if err != nil {
			t.Errorf("Level(%q) unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("Level(%q) got=%v, want=%v", in, got, want)
		}
	}
}

func TestConfig_OptionsDisableNatives(t *testing.T) {
	cfg := &lango.Config{Natives: lango.NativesConfig{Disabled: []string{"clock"}}}
	r := langotest.Run(t, "clock();", cfg.Options()...)
	if r.Err == nil || !strings.Contains(r.Err.Error(), "Undefined variable 'clock'.") {
		t.Errorf("got=%v, want clock to be undefined", r.Err)
	}

	r = langotest.Run(t, "print clock;", lango.DefaultConfig().Options()...)
	if diff := cmp.Diff([]string{"<native fn>"}, r.Lines()); diff != "" {
		t.Errorf("default options should keep clock (-want +got):\n%s", diff)
	}
}
