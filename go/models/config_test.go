package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	c := (&Config{}).Init()
	if c.Output != os.Stderr {
		t.Error("default output should be stderr")
	}
	if c.VfsPrefix != "/vfs" || c.Hostname != "bulldog" {
		t.Errorf("bad defaults: %q %q", c.VfsPrefix, c.Hostname)
	}
	if c.FollowSymlinks {
		t.Error("symlink following should default off")
	}
	c = &Config{Hostname: "kennel", Strsize: 5}
	c.Init()
	if c.Hostname != "kennel" || c.Strsize != 5 {
		t.Error("Init() overwrote explicit values")
	}
}

func TestConfigLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	data := `{"hostname": "kennel", "follow_symlinks": true, "console_width": 40}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	c := (&Config{Verbose: true}).Init()
	if err := c.Load(path); err != nil {
		t.Fatal(err)
	}
	if c.Hostname != "kennel" || !c.FollowSymlinks || c.ConsoleWidth != 40 {
		t.Errorf("config not merged: %+v", c)
	}
	if !c.Verbose || c.VfsPrefix != "/vfs" {
		t.Error("Load() clobbered fields missing from the file")
	}
}

func TestConfigLoadErrors(t *testing.T) {
	c := (&Config{}).Init()
	if err := c.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("loading a missing file should fail")
	}
	if err := c.decode(strings.NewReader(`{"hostnme": "typo"}`), "inline"); err == nil {
		t.Error("unknown fields should be rejected")
	}
}
