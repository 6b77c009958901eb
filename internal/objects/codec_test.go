package objects

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/KostasZigo/gitodb/utils"
	"github.com/klauspost/compress/zlib"
)

func TestCompressDecompress_RoundTrip(t *testing.T) {
	data := utils.FrameObject(utils.BlobObjectType, []byte("round trip\n"))

	compressed, err := compressObject(data, zlib.DefaultCompression)
	if err != nil {
		t.Fatalf("compressObject failed: %v", err)
	}

	decompressed, err := decompressObject(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("decompressObject failed: %v", err)
	}

	if !bytes.Equal(decompressed, data) {
		t.Errorf("Expected %q, got %q", data, decompressed)
	}
}

// TestCompressObject_ZlibHeader verifies output is a zlib stream readers like git accept.
func TestCompressObject_ZlibHeader(t *testing.T) {
	compressed, err := compressObject([]byte("blob 0\x00"), zlib.DefaultCompression)
	if err != nil {
		t.Fatalf("compressObject failed: %v", err)
	}

	if len(compressed) < 2 || compressed[0] != 0x78 {
		t.Fatalf("Expected zlib header starting with 0x78, got % x", compressed[:min(2, len(compressed))])
	}
	if (uint16(compressed[0])<<8|uint16(compressed[1]))%31 != 0 {
		t.Errorf("Invalid zlib header check bits: % x", compressed[:2])
	}
}

func TestCompressObject_InvalidLevel(t *testing.T) {
	if _, err := compressObject([]byte("x"), 42); err == nil {
		t.Fatal("Expected error for invalid compression level")
	}
}

func TestDecompressObject_Garbage(t *testing.T) {
	if _, err := decompressObject(bytes.NewReader([]byte("garbage"))); err == nil {
		t.Fatal("Expected error when decompressing garbage")
	}
}

// TestDecompressObject_TruncatedReportsOnce verifies the read error is not repeated by Close.
func TestDecompressObject_TruncatedReportsOnce(t *testing.T) {
	compressed, err := compressObject(bytes.Repeat([]byte("truncate me "), 512), zlib.NoCompression)
	if err != nil {
		t.Fatalf("compressObject failed: %v", err)
	}

	_, err = decompressObject(bytes.NewReader(compressed[:len(compressed)/2]))
	if err == nil {
		t.Fatal("Expected error for truncated stream")
	}
	if strings.Count(err.Error(), io.ErrUnexpectedEOF.Error()) > 1 || strings.Contains(err.Error(), "; ") {
		t.Errorf("Error reported more than once: %v", err)
	}
}

func TestDecodeFramedObject(t *testing.T) {
	objectType, content, err := decodeFramedObject([]byte("tree 3\x00abc"), true)
	if err != nil {
		t.Fatalf("decodeFramedObject failed: %v", err)
	}
	if objectType != utils.TreeObjectType {
		t.Errorf("Expected type %s, got %s", utils.TreeObjectType, objectType)
	}
	if string(content) != "abc" {
		t.Errorf("Expected content %q, got %q", "abc", content)
	}
}

// TestDecodeFramedObject_ContentContainsNull verifies only the first NUL ends the header.
func TestDecodeFramedObject_ContentContainsNull(t *testing.T) {
	_, content, err := decodeFramedObject([]byte("blob 3\x00a\x00b"), true)
	if err != nil {
		t.Fatalf("decodeFramedObject failed: %v", err)
	}
	if !bytes.Equal(content, []byte("a\x00b")) {
		t.Errorf("Expected content %q, got %q", "a\x00b", content)
	}
}

func TestDecodeFramedObject_LengthMismatch(t *testing.T) {
	frame := []byte("blob 99\x00short")

	if _, _, err := decodeFramedObject(frame, true); !errors.Is(err, ErrCorruptObject) {
		t.Errorf("Strict: expected ErrCorruptObject, got: %v", err)
	}

	_, content, err := decodeFramedObject(frame, false)
	if err != nil {
		t.Fatalf("Lenient: unexpected error: %v", err)
	}
	if string(content) != "short" {
		t.Errorf("Lenient: expected content %q, got %q", "short", content)
	}
}

func TestDecodeFramedObject_NegativeSize(t *testing.T) {
	if _, _, err := decodeFramedObject([]byte("blob -1\x00"), true); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("Expected ErrMalformedHeader, got: %v", err)
	}
}

func TestDecodeFramedObject_LenientHeader(t *testing.T) {
	tests := []struct {
		frame        string
		expectedType utils.ObjectType
	}{
		{frame: "blob\x00hello", expectedType: "blob"},
		{frame: "weird 5\x00hello", expectedType: "weird"},
		{frame: "blob x\x00hello", expectedType: utils.BlobObjectType},
		{frame: "\x00hello", expectedType: ""},
	}

	for _, tt := range tests {
		if _, _, err := decodeFramedObject([]byte(tt.frame), true); !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("Strict %q: expected ErrMalformedHeader, got: %v", tt.frame, err)
		}

		objectType, content, err := decodeFramedObject([]byte(tt.frame), false)
		if err != nil {
			t.Errorf("Lenient %q: unexpected error: %v", tt.frame, err)
			continue
		}
		if objectType != tt.expectedType || string(content) != "hello" {
			t.Errorf("Lenient %q: got (%q, %q), want (%q, %q)", tt.frame, objectType, content, tt.expectedType, "hello")
		}
	}
}

func TestValidateIdentifier(t *testing.T) {
	hash, err := ValidateIdentifier("CE013625030BA8DBA906F756967F9E9CA394464A")
	if err != nil {
		t.Fatalf("ValidateIdentifier failed: %v", err)
	}
	if hash != "ce013625030ba8dba906f756967f9e9ca394464a" {
		t.Errorf("Expected lowercased hash, got %s", hash)
	}

	for _, invalid := range []string{"", "abc", "ce013625030ba8dba906f756967f9e9ca394464", "ce013625030ba8dba906f756967f9e9ca394464ag"} {
		if _, err := ValidateIdentifier(invalid); !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("ValidateIdentifier(%q): expected ErrInvalidIdentifier, got: %v", invalid, err)
		}
	}
}
