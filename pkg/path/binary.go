package path

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"os"

	"trail_guide/pkg/geo"
)

const (
	magicBytes = "TRAILGDE"
	version    = uint32(1)

	maxPaths         = 100_000
	maxPointsPerPath = 1_000_000
	maxNameLen       = 4096
)

// fileHeader is the binary header of a path-set file.
type fileHeader struct {
	Magic    [8]byte
	Version  uint32
	NumPaths uint32
}

// WriteBinary serializes a path set to a binary file. The file carries a
// CRC32 trailer and is written via a temp file with an atomic rename, so a
// crashed import never leaves a truncated set behind.
func WriteBinary(filename string, paths []*Path) error {
	if len(paths) > maxPaths {
		return fmt.Errorf("too many paths: %d > %d", len(paths), maxPaths)
	}

	tmpPath := filename + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath) // clean up on error
	}()

	w := &crcWriter{w: f, hash: crc32.NewIEEE()}

	hdr := fileHeader{Version: version, NumPaths: uint32(len(paths))}
	copy(hdr.Magic[:], magicBytes)
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range paths {
		if err := writeString(w, p.ID); err != nil {
			return fmt.Errorf("write path ID: %w", err)
		}
		if err := writeString(w, p.Name); err != nil {
			return fmt.Errorf("write path name: %w", err)
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(p.coords))); err != nil {
			return fmt.Errorf("write point count: %w", err)
		}
		lats := make([]float64, len(p.coords))
		lons := make([]float64, len(p.coords))
		for i, c := range p.coords {
			lats[i] = c.Lat
			lons[i] = c.Lon
		}
		if err := binary.Write(w, binary.LittleEndian, lats); err != nil {
			return fmt.Errorf("write latitudes: %w", err)
		}
		if err := binary.Write(w, binary.LittleEndian, lons); err != nil {
			return fmt.Errorf("write longitudes: %w", err)
		}
	}

	// CRC32 trailer, not included in its own checksum.
	if err := binary.Write(f, binary.LittleEndian, w.hash.Sum32()); err != nil {
		return fmt.Errorf("write CRC32: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// ReadBinary loads a path set written by WriteBinary, verifying the magic,
// version, size limits, and CRC32 trailer.
func ReadBinary(filename string) ([]*Path, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("file too small: %d bytes", len(data))
	}

	body := data[:len(data)-4]
	wantCRC := binary.LittleEndian.Uint32(data[len(data)-4:])
	if got := crc32.ChecksumIEEE(body); got != wantCRC {
		return nil, fmt.Errorf("CRC mismatch: got %08x, want %08x", got, wantCRC)
	}

	r := &sliceReader{data: body}

	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(hdr.Magic[:]) != magicBytes {
		return nil, fmt.Errorf("bad magic: %q", hdr.Magic)
	}
	if hdr.Version != version {
		return nil, fmt.Errorf("unsupported version %d (want %d)", hdr.Version, version)
	}
	if hdr.NumPaths > maxPaths {
		return nil, fmt.Errorf("path count %d exceeds limit %d", hdr.NumPaths, maxPaths)
	}

	paths := make([]*Path, 0, hdr.NumPaths)
	for i := uint32(0); i < hdr.NumPaths; i++ {
		id, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("read path %d ID: %w", i, err)
		}
		name, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("read path %d name: %w", i, err)
		}

		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("read path %d point count: %w", i, err)
		}
		if n < 2 || n > maxPointsPerPath {
			return nil, fmt.Errorf("path %d: invalid point count %d", i, n)
		}

		lats := make([]float64, n)
		lons := make([]float64, n)
		if err := binary.Read(r, binary.LittleEndian, lats); err != nil {
			return nil, fmt.Errorf("read path %d latitudes: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, lons); err != nil {
			return nil, fmt.Errorf("read path %d longitudes: %w", i, err)
		}

		coords := make([]geo.Point, n)
		for j := range coords {
			coords[j] = geo.Point{Lat: lats[j], Lon: lons[j]}
		}
		p, err := New(id, name, coords)
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		paths = append(paths, p)
	}

	if r.remaining() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after last path", r.remaining())
	}
	return paths, nil
}

func writeString(w io.Writer, s string) error {
	if len(s) > maxNameLen {
		return fmt.Errorf("string too long: %d > %d", len(s), maxNameLen)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

func readString(r *sliceReader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	if n > maxNameLen {
		return "", fmt.Errorf("string length %d exceeds limit %d", n, maxNameLen)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// crcWriter tees all writes into a running CRC32.
type crcWriter struct {
	w    io.Writer
	hash hash.Hash32
}

func (c *crcWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.hash.Write(p[:n])
	return n, err
}

// sliceReader is an io.Reader over a byte slice that tracks how much is left.
type sliceReader struct {
	data []byte
	off  int
}

func (s *sliceReader) Read(p []byte) (int, error) {
	if s.off >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.off:])
	s.off += n
	return n, nil
}

func (s *sliceReader) remaining() int { return len(s.data) - s.off }
