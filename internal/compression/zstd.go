// Package compression inspects and unpacks zstd package archives.
//
// Decompression runs in-process instead of shelling out to unzstd.
package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Magic is the zstd frame magic number every archive must start with.
var Magic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// ErrInvalidArchive is returned when a file is not a zstd archive.
var ErrInvalidArchive = errors.New("compression: not a zstd archive")

// IsZstd reports whether header begins with the zstd magic number.
func IsZstd(header []byte) bool {
	return bytes.HasPrefix(header, Magic)
}

// ValidateFile checks the first bytes of the file at path. Nothing beyond
// the magic number is verified.
func ValidateFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}
	defer f.Close()

	header := make([]byte, len(Magic))
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("%w: %s: too short", ErrInvalidArchive, path)
	}
	if !IsZstd(header) {
		return fmt.Errorf("%w: %s: bad magic % x", ErrInvalidArchive, path, header)
	}
	return nil
}

// TarPath returns the sibling path a decompressed archive is written to
// (foo.pkg.tar.zst -> foo.pkg.tar).
func TarPath(path string) string {
	return strings.TrimSuffix(path, ".zst")
}

// Decompressor unpacks zstd archives to disk.
type Decompressor struct {
	opts []zstd.DOption
}

// NewDecompressor creates a Decompressor. Decoding runs on a single
// goroutine unless overridden by opts.
func NewDecompressor(opts ...zstd.DOption) *Decompressor {
	return &Decompressor{
		opts: append([]zstd.DOption{zstd.WithDecoderConcurrency(1)}, opts...),
	}
}

// DecompressFile writes the decompressed content of src to dst.
func (d *Decompressor) DecompressFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer in.Close()

	decoder, err := zstd.NewReader(in, d.opts...)
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	defer decoder.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	if _, err := io.Copy(out, decoder); err != nil {
		return fmt.Errorf("decompress %s: %w", src, err)
	}
	return nil
}
