package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/workcell/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "workcell")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join(xdg, "workcell") {
		t.Errorf("cacheDir() = %q, want under %q", dir, xdg)
	}
}

func TestCacheClearCommand(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	fc, err := cache.NewFileCache(filepath.Join(xdg, "workcell"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	if _, hit, _ := fc.Get(ctx, "a"); hit {
		t.Error("entry survived cache clear")
	}
}

func TestCachePathCommand(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	var out bytes.Buffer
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != filepath.Join(xdg, "workcell") {
		t.Errorf("cache path = %q", out.String())
	}
}

func TestCacheInfoCommand(t *testing.T) {
	dir := t.TempDir()
	record := writeRecord(t, dir, "cell.yaml")

	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		root := New(&bytes.Buffer{}, LogInfo).RootCommand()
		root.SetOut(&out)
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}

	run("solve", record, "-o", filepath.Join(dir, "out.json"))
	if got := run("cache", "info"); !strings.Contains(got, "layouts    1\n") {
		t.Errorf("cache info after one solve:\n%s", got)
	}
}
