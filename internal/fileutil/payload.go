// Package fileutil reads corpus payload files, transparently decompressing
// gzip and xz containers by magic bytes.
package fileutil

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/AcaciaBible/core/errors"
)

// CompressionType identifies a payload container.
type CompressionType string

const (
	CompressionNone CompressionType = "none"
	CompressionGzip CompressionType = "gzip"
	CompressionXZ   CompressionType = "xz"
)

// DetectCompression inspects magic bytes. Anything that is not gzip or xz is
// treated as a plain payload.
func DetectCompression(data []byte) CompressionType {
	// gzip magic (1f 8b)
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		return CompressionGzip
	}
	// XZ magic (fd 37 7a 58 5a 00)
	if len(data) >= 6 && data[0] == 0xfd && data[1] == 0x37 && data[2] == 0x7a &&
		data[3] == 0x58 && data[4] == 0x5a && data[5] == 0x00 {
		return CompressionXZ
	}
	return CompressionNone
}

// ReadPayload reads a corpus payload file, decompressing it if the content
// is gzip or xz regardless of file extension.
func ReadPayload(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading payload %s", path)
	}
	return Decompress(data)
}

// Decompress unwraps a gzip or xz container; plain data passes through.
func Decompress(data []byte) ([]byte, error) {
	switch DetectCompression(data) {
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, "opening gzip payload")
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "decompressing gzip payload")
		}
		return out, nil
	case CompressionXZ:
		r, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, "opening xz payload")
		}
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "decompressing xz payload")
		}
		return out, nil
	default:
		return data, nil
	}
}
