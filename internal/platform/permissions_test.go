package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestChmod(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "test.txt")
	if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(path, 0600); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("permissions = %o, want %o", perm, 0600)
		}
	}
}

func TestMakeWritable(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "msvcp140.dll")
	if err := os.WriteFile(path, []byte("dll"), 0444); err != nil {
		t.Fatal(err)
	}

	ro, err := IsReadOnly(path)
	if err != nil {
		t.Fatal(err)
	}
	if !ro {
		t.Fatal("expected freshly written 0444 file to be read-only")
	}

	if err := MakeWritable(path); err != nil {
		t.Fatalf("MakeWritable failed: %v", err)
	}

	ro, err = IsReadOnly(path)
	if err != nil {
		t.Fatal(err)
	}
	if ro {
		t.Error("file is still read-only after MakeWritable")
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0644 {
			t.Errorf("permissions = %o, want %o", perm, 0644)
		}
	}
}

func TestMakeWritableAlreadyWritable(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "ucrtbase.dll")
	if err := os.WriteFile(path, []byte("dll"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := MakeWritable(path); err != nil {
		t.Fatalf("MakeWritable failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("permissions = %o, want %o", perm, 0600)
		}
	}
}

func TestMakeWritableMissing(t *testing.T) {
	if err := MakeWritable(filepath.Join(t.TempDir(), "missing.dll")); !os.IsNotExist(err) {
		t.Errorf("MakeWritable(missing) error = %v, want not-exist", err)
	}
}
