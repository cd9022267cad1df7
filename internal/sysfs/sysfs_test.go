package sysfs

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/afero"
)

func TestRead(t *testing.T) {
	mem := afero.NewMemMapFs()
	mem.MkdirAll("/sys/class/hwmon/hwmon0", 0755)
	afero.WriteFile(mem, "/sys/class/hwmon/hwmon0/name", []byte("coretemp\n"), 0644)
	afero.WriteFile(mem, "/sys/class/hwmon/hwmon0/temp1_input", []byte("  41000 \n"), 0644)
	afero.WriteFile(mem, "/sys/class/hwmon/hwmon0/empty", nil, 0644)

	fs := New(mem, "/sys")

	tests := []struct {
		elem   []string
		want   string
		wantOK bool
	}{
		{[]string{"class", "hwmon", "hwmon0", "name"}, "coretemp", true},
		{[]string{"class/hwmon/hwmon0/temp1_input"}, "41000", true},
		{[]string{"class", "hwmon", "hwmon0", "empty"}, "", false},
		{[]string{"class", "hwmon", "hwmon9", "name"}, "", false},
		{[]string{"class", "hwmon", "hwmon0"}, "", false},
	}
	for _, tt := range tests {
		got, ok := fs.Read(tt.elem...)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Read(%v) = %q, %v; want %q, %v", tt.elem, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestChildren(t *testing.T) {
	mem := afero.NewMemMapFs()
	for i := 0; i < 70; i++ {
		mem.MkdirAll(fmt.Sprintf("/sys/class/thermal/thermal_zone%d", i), 0755)
	}
	fs := New(mem, "/sys")

	var names []string
	for name := range fs.Children("class", "thermal") {
		names = append(names, name)
	}
	if len(names) != 70 {
		t.Fatalf("got %d children, want 70", len(names))
	}

	// Early stop must not read further.
	var first []string
	for name := range fs.Children("class", "thermal") {
		first = append(first, name)
		if len(first) == 3 {
			break
		}
	}
	if len(first) != 3 {
		t.Errorf("early stop: got %d names, want 3", len(first))
	}
}

func TestChildrenMissingDir(t *testing.T) {
	fs := New(afero.NewMemMapFs(), "/sys")
	for name := range fs.Children("class", "drm") {
		t.Errorf("unexpected child %q of missing directory", name)
	}

	fs.fs.MkdirAll("/sys/class", 0755)
	afero.WriteFile(fs.fs, "/sys/class/drm", []byte("not a dir"), 0644)
	for name := range fs.Children("class", "drm") {
		t.Errorf("unexpected child %q of regular file", name)
	}
}

func TestChildrenKeepsDanglingSymlinks(t *testing.T) {
	root := t.TempDir()
	hwmon := filepath.Join(root, "class", "hwmon")
	if err := os.MkdirAll(hwmon, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "devices", "gone"), filepath.Join(hwmon, "hwmon0")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.WriteFile(filepath.Join(hwmon, "hwmon1"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	fs := NewOS(root)
	names := slices.Sorted(fs.Children("class", "hwmon"))
	if !slices.Equal(names, []string{"hwmon0", "hwmon1"}) {
		t.Errorf("Children = %v, want [hwmon0 hwmon1]", names)
	}
	if _, ok := fs.Read("class", "hwmon", "hwmon0", "name"); ok {
		t.Error("read through dangling symlink should report absence")
	}
}

func TestNewOSDefaultRoot(t *testing.T) {
	if got := NewOS("").Root(); got != DefaultRoot {
		t.Errorf("Root() = %q, want %q", got, DefaultRoot)
	}
}
