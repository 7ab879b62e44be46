package parser

import (
	"bytes"
	"compress/gzip"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

// Compression identifies how an input file is encoded on disk
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionXZ   Compression = "xz"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// Source describes the file a table was read from
type Source struct {
	Path        string
	Size        int64
	Checksum    string // BLAKE3 of the bytes as stored
	Compression Compression
}

// DetectCompression inspects the leading magic bytes of data
func DetectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, xzMagic):
		return CompressionXZ
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// ResolvePath expands a leading ~ and makes path absolute.
// It fails with ErrNotFound unless the result is an existing regular file.
func ResolvePath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("error resolving path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotFound, absPath)
	}
	return absPath, nil
}

// readSource loads a file fully, checksums it and undoes any compression
func readSource(path string) ([]byte, *Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	sum := blake3.Sum256(raw)
	src := &Source{
		Path:        path,
		Size:        int64(len(raw)),
		Checksum:    hex.EncodeToString(sum[:]),
		Compression: DetectCompression(raw),
	}

	data, err := decompress(raw, src.Compression)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	return data, src, nil
}

// decompress returns the plain text behind raw
func decompress(raw []byte, compression Compression) ([]byte, error) {
	var r io.Reader
	switch compression {
	case CompressionGzip:
		gzReader, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
	case CompressionXZ:
		xzReader, err := xz.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzReader
	default:
		return raw, nil
	}
	return io.ReadAll(r)
}
