package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tinyland-inc/chanfmt/pkg/config"
)

func TestConfigToDhall_DefaultConfig(t *testing.T) {
	dhall := configToDhall(config.DefaultConfig())

	for _, expected := range []string{
		"let Channel =",
		"render =",
		`default_channel = "plaintext"`,
		"table_width = 60",
		`telegram = { enabled = True, dialect = "", max_message_length = 0 } : Channel`,
		"whatsapp =",
		`log_level = "info"`,
	} {
		if !strings.Contains(dhall, expected) {
			t.Errorf("expected dhall output to contain %q", expected)
		}
	}
}

func TestConfigToDhall_ChannelOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Channels.Slack = config.ChannelConfig{Enabled: false, Dialect: "plaintext", MaxMessageLength: 3000}

	dhall := configToDhall(cfg)
	want := `, slack = { enabled = False, dialect = "plaintext", max_message_length = 3000 } : Channel`
	if !strings.Contains(dhall, want) {
		t.Errorf("expected %q in output:\n%s", want, dhall)
	}
}

func TestDhallText(t *testing.T) {
	tests := map[string]string{
		"plain":         `"plain"`,
		`quote"`:        `"quote\""`,
		`back\slash`:    `"back\\slash"`,
		"interp ${x}":   `"interp \${x}"`,
		"line\nfeed":    `"line\nfeed"`,
		"":              `""`,
		"dollar $ only": `"dollar $ only"`,
	}
	for in, want := range tests {
		if got := dhallText(in); got != want {
			t.Errorf("dhallText(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestEnvOverrideWarnings(t *testing.T) {
	got := envOverrideWarnings([]string{"HOME=/root", "CHANFMT_RENDER_TABLE_WIDTH=40", "CHANFMTX=1"})
	if len(got) != 1 || !strings.Contains(got[0], "CHANFMT_RENDER_TABLE_WIDTH") {
		t.Errorf("unexpected warnings: %v", got)
	}
}

func TestRunToDhall_WritesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	if err := config.SaveConfig(configPath, config.DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	result, err := RunToDhall(ToDhallOptions{ConfigPath: configPath})
	if err != nil {
		t.Fatalf("RunToDhall: %v", err)
	}

	want := filepath.Join(dir, "config.dhall")
	if result.OutputPath != want {
		t.Errorf("output path = %s, want %s", result.OutputPath, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != result.Source {
		t.Error("written file does not match generated source")
	}

	if _, err := RunToDhall(ToDhallOptions{ConfigPath: configPath}); err == nil {
		t.Error("expected error when output exists without --force")
	}
	if _, err := RunToDhall(ToDhallOptions{ConfigPath: configPath, Force: true}); err != nil {
		t.Errorf("expected --force to overwrite: %v", err)
	}
}

func TestRunToDhall_DryRun(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	if err := config.SaveConfig(configPath, config.DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	result, err := RunToDhall(ToDhallOptions{ConfigPath: configPath, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.Source == "" {
		t.Error("expected generated source")
	}
	if _, err := os.Stat(filepath.Join(dir, "config.dhall")); !os.IsNotExist(err) {
		t.Error("dry run must not write the output file")
	}
}

func TestRunToDhall_MissingConfig(t *testing.T) {
	_, err := RunToDhall(ToDhallOptions{ConfigPath: filepath.Join(t.TempDir(), "none.json")})
	if err == nil {
		t.Fatal("expected error for missing config")
	}
}
