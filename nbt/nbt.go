// Package nbt reads and writes the binary tag-tree format carried inside item
// and entity payloads. It supports the big-endian Java profile (default) and
// the little-endian Bedrock profile, and gzip or zlib compressed input.
package nbt

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"go.uber.org/zap"
)

// Compression selects how Dump wraps the encoded tree.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionGzip Compression = 1
	CompressionZlib Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name as produced by String. The empty
// string means none.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "gzip":
		return CompressionGzip, nil
	case "zlib":
		return CompressionZlib, nil
	default:
		return 0, &WriteError{Err: fmt.Errorf("unknown compression type: %q", name)}
	}
}

type options struct {
	littleEndian bool
	compression  Compression
	logger       *zap.Logger
}

// Option configures Load and Dump.
type Option func(*options)

// WithLittleEndian selects the little-endian (Bedrock) profile.
func WithLittleEndian() Option {
	return func(o *options) { o.littleEndian = true }
}

// WithCompression sets the compression Dump applies. Load ignores it and
// detects compression from the input.
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithLogger sets the logger that receives decompression diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load decodes a root tag from data. Input starting with the gzip magic
// (1f 8b) or a zlib header (78 01, 78 9c, 78 da) is decompressed first.
//
// Decompression failures are not errors: the bytes are then
// parsed as-is, and the failure is only logged at debug level.
func Load(data []byte, opts ...Option) (Tag, error) {
	o := buildOptions(opts)
	data = decompress(data, o.logger)
	return NewReader(data, o.littleEndian).ReadRoot()
}

// LoadFile reads path and decodes it with Load.
func LoadFile(path string, opts ...Option) (Tag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tag{}, fmt.Errorf("failed to read tag file: %w", err)
	}
	return Load(data, opts...)
}

// Dump encodes root, which must hold a compound, and applies the configured
// compression.
func Dump(root Tag, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	w := NewWriter(o.littleEndian)
	if err := w.WriteRoot(root); err != nil {
		return nil, err
	}
	return compress(w.Bytes(), o.compression)
}

// DumpFile encodes root with Dump and writes it to path.
func DumpFile(path string, root Tag, opts ...Option) error {
	data, err := Dump(root, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write tag file: %w", err)
	}
	return nil
}

// Sniff reports the compression that Load would try for data.
func Sniff(data []byte) Compression {
	if len(data) < 2 {
		return CompressionNone
	}
	switch {
	case data[0] == 0x1f && data[1] == 0x8b:
		return CompressionGzip
	case data[0] == 0x78 && (data[1] == 0x9c || data[1] == 0x01 || data[1] == 0xda):
		return CompressionZlib
	default:
		return CompressionNone
	}
}

func decompress(data []byte, logger *zap.Logger) []byte {
	kind := Sniff(data)
	var (
		r   io.ReadCloser
		err error
	)
	switch kind {
	case CompressionGzip:
		r, err = gzip.NewReader(bytes.NewReader(data))
	case CompressionZlib:
		r, err = zlib.NewReader(bytes.NewReader(data))
	default:
		return data
	}
	if err == nil {
		var out []byte
		out, err = io.ReadAll(r)
		r.Close()
		if err == nil {
			return out
		}
	}
	logger.Debug("tag tree decompression failed, parsing raw bytes",
		zap.Stringer("compression", kind),
		zap.Int("bytes", len(data)),
		zap.Error(err),
	)
	return data
}

func compress(data []byte, c Compression) ([]byte, error) {
	var (
		buf bytes.Buffer
		w   io.WriteCloser
	)
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		w = gzip.NewWriter(&buf)
	case CompressionZlib:
		w = zlib.NewWriter(&buf)
	default:
		return nil, &WriteError{Err: fmt.Errorf("unknown compression type: %s", c)}
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%s compress: %w", c, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s compress: %w", c, err)
	}
	return buf.Bytes(), nil
}
