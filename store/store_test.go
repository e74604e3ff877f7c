package store

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func openKind(t *testing.T, kind Kind) Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), string(kind))
	s, err := Open(kind, path)
	if err != nil {
		t.Fatalf("failed to open %s store: %v", kind, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoresSaveLoad(t *testing.T) {
	datasets := map[string][]int{
		"random-1k": {5, 2, 8, 3, 6, 2, 5, 8, 3, 0},
		"negative":  {-7, 0, -1, 1 << 40, -(1 << 40)},
		"empty":     {},
	}

	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			s := openKind(t, kind)

			for name, data := range datasets {
				if err := s.Save(name, data); err != nil {
					t.Fatalf("Save(%s) failed: %v", name, err)
				}
			}
			for name, want := range datasets {
				got, err := s.Load(name)
				if err != nil {
					t.Fatalf("Load(%s) failed: %v", name, err)
				}
				if !slices.Equal(got, want) {
					t.Errorf("Load(%s) = %v, want %v", name, got, want)
				}
			}
		})
	}
}

func TestStoresLoadMissing(t *testing.T) {
	for _, kind := range Kinds() {
		s := openKind(t, kind)
		if _, err := s.Load("nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", kind, err)
		}
	}
}

func TestStoresOverwrite(t *testing.T) {
	for _, kind := range Kinds() {
		s := openKind(t, kind)
		_ = s.Save("d", []int{1, 2, 3})
		if err := s.Save("d", []int{9}); err != nil {
			t.Fatalf("%s: overwrite failed: %v", kind, err)
		}
		got, err := s.Load("d")
		if err != nil || !slices.Equal(got, []int{9}) {
			t.Errorf("%s: expected [9], got %v (%v)", kind, got, err)
		}
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	s := NewMemory()
	data := []int{3, 2, 1}
	_ = s.Save("d", data)
	data[0] = 100

	got, _ := s.Load("d")
	got[1] = 200
	again, _ := s.Load("d")

	if !slices.Equal(again, []int{3, 2, 1}) {
		t.Errorf("memory store shares slices with callers: %v", again)
	}
}

func TestBboltReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	s, err := OpenBbolt(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save("d", []int{4, 5, 6}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = OpenBbolt(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, err := s.Load("d")
	if err != nil || !slices.Equal(got, []int{4, 5, 6}) {
		t.Errorf("expected [4 5 6] after reopen, got %v (%v)", got, err)
	}
}

func TestFileStoreRejectsBadNames(t *testing.T) {
	s, err := OpenFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"", "..", "a/b", `a\b`} {
		if err := s.Save(name, []int{1}); err == nil {
			t.Errorf("expected error for dataset name %q", name)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(" " + string(k) + " ")
		if err != nil || got != k {
			t.Errorf("ParseKind(%s) = %s, %v", k, got, err)
		}
	}
	if _, err := ParseKind("sqlite"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestOpenNeedsPath(t *testing.T) {
	if _, err := Open(KindPebble, ""); err == nil {
		t.Error("expected error when pebble has no path")
	}
	if s, err := Open(KindMemory, ""); err != nil || s == nil {
		t.Errorf("memory store should not need a path: %v", err)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	for _, buf := range [][]byte{nil, {1, 2, 3}, encode([]int{1, 2})[:12]} {
		if _, err := decode(buf); err == nil {
			t.Errorf("expected error decoding %v", buf)
		}
	}
}
