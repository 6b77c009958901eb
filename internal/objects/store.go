package objects

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KostasZigo/gitodb/internal/constants"
	"github.com/KostasZigo/gitodb/utils"
	"github.com/google/renameio"
	"github.com/klauspost/compress/zlib"
	"go.uber.org/multierr"
)

// ObjectStore manages storage of objects under <gitDir>/objects.
type ObjectStore struct {
	gitDir string // Path to repository metadata directory, e.g. repo/.git
	strict bool   // Verify declared size and hash on read
	level  int    // zlib compression level
}

// Option configures an ObjectStore.
type Option func(*ObjectStore)

// WithStrictLength toggles size and hash verification on read.
func WithStrictLength(strict bool) Option {
	return func(store *ObjectStore) {
		store.strict = strict
	}
}

// WithCompressionLevel sets the zlib level used when writing objects.
func WithCompressionLevel(level int) Option {
	return func(store *ObjectStore) {
		store.level = level
	}
}

// NewObjectStore returns a store rooted at the metadata directory gitDir.
// Reads are strict and writes use zlib's default level unless overridden.
func NewObjectStore(gitDir string, opts ...Option) *ObjectStore {
	store := &ObjectStore{
		gitDir: gitDir,
		strict: true,
		level:  zlib.DefaultCompression,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// GitDir returns the metadata directory the store is rooted at.
func (store *ObjectStore) GitDir() string {
	return store.gitDir
}

// objectPath returns <gitDir>/objects/ab/cdef... for a validated hash.
func (store *ObjectStore) objectPath(hash string) (dir string, file string) {
	dir = filepath.Join(store.gitDir, constants.Objects, hash[:constants.HashDirPrefixLength])
	return dir, filepath.Join(dir, hash[constants.HashDirPrefixLength:])
}

// StoreBlob reads filePath, stores its content as a blob and returns the blob id.
// An existing object file at the same location is overwritten.
func (store *ObjectStore) StoreBlob(filePath string) (string, error) {
	blob, err := NewBlobFromFile(filePath)
	if err != nil {
		return "", err
	}

	if err := store.writeObjectFile(blob); err != nil {
		return "", err
	}

	return blob.Hash(), nil
}

// Store saves an object to <gitDir>/objects/<first 2 chars>/<rest>.
// Returns nil without writing if the object already exists.
func (store *ObjectStore) Store(object Object) error {
	if store.Exists(object.Hash()) {
		slog.Debug("Object with this hash already exists",
			"object", object.String())
		return nil
	}

	return store.writeObjectFile(object)
}

func (store *ObjectStore) writeObjectFile(object Object) error {
	hash := object.Hash()
	objectDir, objectFile := store.objectPath(hash)

	// Create directory if it doesn't exist
	if err := os.MkdirAll(objectDir, constants.DirPerms); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	compressedData, err := compressObject(object.Data(), store.level)
	if err != nil {
		return fmt.Errorf("failed to compress object: %w", err)
	}

	// Temp file + rename, so a reader never sees a partial object
	if err := renameio.WriteFile(objectFile, compressedData, constants.ObjectPerms); err != nil {
		return fmt.Errorf("failed to write object file: %w", err)
	}

	slog.Debug("Stored object",
		"object", object.String(),
		"compressed_size", len(compressedData))
	return nil
}

// ReadObject decompresses the object with the given hash and returns its type and content.
// Both blob and tree readers go through here.
func (store *ObjectStore) ReadObject(hash string) (objectType utils.ObjectType, content []byte, err error) {
	hash, err = ValidateIdentifier(hash)
	if err != nil {
		return "", nil, err
	}

	_, objectFile := store.objectPath(hash)
	file, err := os.Open(objectFile)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, fmt.Errorf("%w: %s", ErrObjectNotFound, hash)
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to open object file %s: %w", hash, err)
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()

	data, err := decompressObject(file)
	if err != nil {
		return "", nil, fmt.Errorf("%w %s: %w", ErrCorruptObject, hash, err)
	}

	objectType, content, err = decodeFramedObject(data, store.strict)
	if err != nil {
		return "", nil, fmt.Errorf("object %s: %w", hash, err)
	}

	if store.strict {
		if actual := utils.HashFrame(data); actual != hash {
			return "", nil, fmt.Errorf("%w %s: hash mismatch, content hashes to %s", ErrCorruptObject, hash, actual)
		}
	}

	return objectType, content, nil
}

// LoadObject returns the raw content of the object with the given hash, whatever its type.
func (store *ObjectStore) LoadObject(hash string) ([]byte, error) {
	_, content, err := store.ReadObject(hash)
	if err != nil {
		return nil, err
	}
	return content, nil
}

// ReadBlob reads a blob from storage by hash
func (store *ObjectStore) ReadBlob(hash string) (*Blob, error) {
	objectType, content, err := store.ReadObject(hash)
	if err != nil {
		return nil, err
	}
	if objectType != utils.BlobObjectType {
		return nil, fmt.Errorf("%w: %s is a %s, not a %s", ErrTypeMismatch, hash, objectType, utils.BlobObjectType)
	}
	return NewBlob(content), nil
}

// Exists checks if an object exists in storage
func (store *ObjectStore) Exists(hash string) bool {
	hash, err := ValidateIdentifier(hash)
	if err != nil {
		return false
	}
	_, objectFile := store.objectPath(hash)
	_, err = os.Stat(objectFile)
	return err == nil
}
