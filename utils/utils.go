package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

type ObjectType string

const (
	BlobObjectType   ObjectType = "blob"
	TreeObjectType   ObjectType = "tree"
	CommitObjectType ObjectType = "commit"
	TagObjectType    ObjectType = "tag"
)

// IsValid reports whether ot is a header label git writes.
// Only blobs and trees are created here; commits and tags are accepted on read.
func (ot ObjectType) IsValid() bool {
	switch ot {
	case BlobObjectType, TreeObjectType, CommitObjectType, TagObjectType:
		return true
	default:
		return false
	}
}

// FrameObject builds "<type> <size>\0<content>".
func FrameObject(objectType ObjectType, content []byte) []byte {
	header := string(objectType) + " " + strconv.Itoa(len(content)) + "\x00"
	data := make([]byte, 0, len(header)+len(content))
	data = append(data, header...)
	return append(data, content...)
}

// ComputeHash calculates the SHA-1 of the framed object, as 40 lowercase hex characters.
func ComputeHash(content []byte, objectType ObjectType) (string, error) {
	if !objectType.IsValid() {
		return "", fmt.Errorf("invalid object type: %s - hash not computed", objectType)
	}
	return HashFrame(FrameObject(objectType, content)), nil
}

// HashFrame hashes an already framed object.
func HashFrame(frame []byte) string {
	sum := sha1.Sum(frame)
	return hex.EncodeToString(sum[:])
}

// BuildDirPath constructs os-agnostic display directory path with trailing separator preserving all components.
// Unlike filepath.Join, does not normalize "." or remove redundant separators.
func BuildDirPath(dirs ...string) string {
	return strings.Join(dirs, string(filepath.Separator)) + string(filepath.Separator)
}
