package path

import (
	"os"
	"path/filepath"
	"testing"

	"trail_guide/pkg/geo"
)

func testPaths(t *testing.T) []*Path {
	t.Helper()
	p1, err := New("trail-1", "Ridge loop", []geo.Point{
		{Lat: 59.900, Lon: 10.700},
		{Lat: 59.905, Lon: 10.702},
		{Lat: 59.910, Lon: 10.701},
	})
	if err != nil {
		t.Fatal(err)
	}
	p2, err := New("trail-2", "", []geo.Point{
		{Lat: -33.8568, Lon: 151.2153},
		{Lat: -33.8587, Lon: 151.2140},
	})
	if err != nil {
		t.Fatal(err)
	}
	return []*Path{p1, p2}
}

func TestBinaryRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "paths.bin")
	orig := testPaths(t)

	if err := WriteBinary(file, orig); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	got, err := ReadBinary(file)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}

	if len(got) != len(orig) {
		t.Fatalf("got %d paths, want %d", len(got), len(orig))
	}
	for i, p := range got {
		o := orig[i]
		if p.ID != o.ID || p.Name != o.Name {
			t.Errorf("path %d: ID/Name = %q/%q, want %q/%q", i, p.ID, p.Name, o.ID, o.Name)
		}
		if p.NumPoints() != o.NumPoints() {
			t.Fatalf("path %d: %d points, want %d", i, p.NumPoints(), o.NumPoints())
		}
		for j, c := range p.Coords() {
			if c != o.Coords()[j] {
				t.Errorf("path %d point %d: %+v, want %+v", i, j, c, o.Coords()[j])
			}
		}
		if p.TotalMeters() != o.TotalMeters() {
			t.Errorf("path %d: total %f, want %f", i, p.TotalMeters(), o.TotalMeters())
		}
	}
}

func TestBinaryEmptySet(t *testing.T) {
	file := filepath.Join(t.TempDir(), "empty.bin")
	if err := WriteBinary(file, nil); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	got, err := ReadBinary(file)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d paths, want 0", len(got))
	}
}

func TestBinaryRejectsCorruption(t *testing.T) {
	file := filepath.Join(t.TempDir(), "paths.bin")
	if err := WriteBinary(file, testPaths(t)); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	data[20] ^= 0xFF
	if err := os.WriteFile(file, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadBinary(file); err == nil {
		t.Error("expected CRC error for corrupted file")
	}
}

func TestBinaryRejectsBadMagic(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bogus.bin")
	if err := os.WriteFile(file, []byte("NOTAPATHSETFILE0\x00\x00\x00\x00"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadBinary(file); err == nil {
		t.Error("expected error for bad magic")
	}
}

func TestBinaryRejectsTruncated(t *testing.T) {
	file := filepath.Join(t.TempDir(), "trunc.bin")
	if err := os.WriteFile(file, []byte{0x01, 0x02}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadBinary(file); err == nil {
		t.Error("expected error for truncated file")
	}
}
