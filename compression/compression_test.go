package compression

import (
	"bytes"
	"io"
	"testing"
)

// Helper function to compress and then decompress data and verify correctness
func testCompressionDecompression(t *testing.T, algorithm string, data []byte) {
	compressedReader, err := DeflateStream(algorithm, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DeflateStream failed for %s: %v", algorithm, err)
	}

	decompressedReader, err := InflateStream(algorithm, compressedReader)
	if err != nil {
		t.Fatalf("InflateStream failed for %s: %v", algorithm, err)
	}

	var decompressedData bytes.Buffer
	_, err = io.Copy(&decompressedData, decompressedReader)
	if err != nil {
		t.Fatalf("Reading decompressed data failed for %s: %v", algorithm, err)
	}

	if !bytes.Equal(data, decompressedData.Bytes()) {
		t.Errorf("Decompressed data does not match original for %s. Got %d bytes, want %d", algorithm, decompressedData.Len(), len(data))
	}
}

func TestCompression(t *testing.T) {
	pile := bytes.Repeat([]byte{0, 1, 0xa5, 0, 0, 0, 0, 0, 0, 0}, 4096)

	tests := []struct {
		algorithm string
		data      []byte
	}{
		{"gzip", []byte("Hello, world!")},
		{"gzip", []byte{}},
		{"gzip", pile},
		{"lz4", []byte("Hello, world!")},
		{"lz4", []byte{}},
		{"lz4", pile},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			testCompressionDecompression(t, tt.algorithm, tt.data)
		})
	}
}

func TestUnsupportedMethod(t *testing.T) {
	if _, err := DeflateStream("zstd", bytes.NewReader(nil)); err == nil {
		t.Error("Expected an error for an unsupported method")
	}
	if _, err := NewReader("zstd", bytes.NewReader(nil)); err == nil {
		t.Error("Expected an error for an unsupported method")
	}
}
