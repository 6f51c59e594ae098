package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/modoterra/logforge/pkg/core"
)

func TestProfileInitAndValidate(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "logforge.yaml")

	rootCmd.SetArgs([]string{"profile", "init", "--output", tmp})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(tmp); err != nil {
		t.Fatalf("profile not written: %v", err)
	}

	rootCmd.SetArgs([]string{"profile", "validate", tmp})
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
}

func TestOnceCommand(t *testing.T) {
	dir := t.TempDir()

	rootCmd.SetArgs([]string{"once", "--dir", dir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}

	for _, c := range core.Categories() {
		data, err := os.ReadFile(filepath.Join(dir, c.Filename()))
		if err != nil {
			t.Fatalf("%s: %v", c, err)
		}
		if len(data) == 0 {
			t.Errorf("%s: empty file", c)
		}
	}
}
