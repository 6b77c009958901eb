package objects

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KostasZigo/gitodb/internal/constants"
	"github.com/KostasZigo/gitodb/utils"
	"github.com/klauspost/compress/zlib"
)

// ValidateIdentifier checks hash is a 40 character hex string and returns it lowercased.
func ValidateIdentifier(hash string) (string, error) {
	if len(hash) != constants.HashStringLength {
		return "", fmt.Errorf("%w %q: expected %d hex characters, got %d",
			ErrInvalidIdentifier, hash, constants.HashStringLength, len(hash))
	}
	if _, err := hex.DecodeString(hash); err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidIdentifier, hash, err)
	}
	return strings.ToLower(hash), nil
}

// compressObject deflates framed object data into a zlib stream.
func compressObject(data []byte, level int) ([]byte, error) {
	var buffer bytes.Buffer

	// Create a new writer that compresses and writes data to the buffer
	writer, err := zlib.NewWriterLevel(&buffer, level)
	if err != nil {
		return nil, err
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, err
	}

	// Call Close in order to flush any buffered data
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// decompressObject inflates a complete zlib stream from r.
func decompressObject(r io.Reader) (data []byte, err error) {
	reader, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer func() {
		// Close repeats the read error, keep it only when reading succeeded
		if closeErr := reader.Close(); err == nil {
			err = closeErr
		}
	}()

	return io.ReadAll(reader)
}

// decodeFramedObject splits "<type> <size>\0<content>" into its type and content.
// With strict set, the header must parse and the declared size must match the content length.
// Otherwise everything after the first NUL is returned along with whatever label precedes it.
func decodeFramedObject(data []byte, strict bool) (utils.ObjectType, []byte, error) {
	nullByteIndex := bytes.IndexByte(data, constants.NullByte)
	if nullByteIndex == -1 {
		return "", nil, fmt.Errorf("%w: no null byte found", ErrMalformedHeader)
	}

	header := string(data[:nullByteIndex])
	content := data[nullByteIndex+1:]

	objectType, size, err := parseHeader(header)
	if !strict {
		return objectType, content, nil
	}
	if err != nil {
		return "", nil, err
	}

	if size != len(content) {
		return "", nil, fmt.Errorf("%w: header declares %d bytes, found %d", ErrCorruptObject, size, len(content))
	}

	return objectType, content, nil
}

// parseHeader reads "<type> <size>". The label is returned even when the header is malformed.
func parseHeader(header string) (utils.ObjectType, int, error) {
	label, sizeField, found := strings.Cut(header, " ")
	objectType := utils.ObjectType(label)
	if !found {
		return objectType, 0, fmt.Errorf("%w %q: missing size field", ErrMalformedHeader, header)
	}

	if !objectType.IsValid() {
		return objectType, 0, fmt.Errorf("%w %q: unknown object type %q", ErrMalformedHeader, header, label)
	}

	size, err := strconv.Atoi(sizeField)
	if err != nil || size < 0 {
		return objectType, 0, fmt.Errorf("%w %q: invalid size %q", ErrMalformedHeader, header, sizeField)
	}

	return objectType, size, nil
}
