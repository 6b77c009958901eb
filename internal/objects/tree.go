package objects

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/KostasZigo/gitodb/internal/constants"
	"github.com/KostasZigo/gitodb/utils"
)

type FileMode string

// Modes as git writes them inside tree objects. Directories carry no leading zero.
const (
	ModeRegularFile FileMode = "100644" // Regular non-executable file
	ModeExecutable  FileMode = "100755" // Executable file
	ModeSymlink     FileMode = "120000" // Symbolic link
	ModeDirectory   FileMode = "40000"  // Directory (tree)
	ModeSubmodule   FileMode = "160000" // Submodule commit
)

func (m FileMode) IsValid() bool {
	switch m {
	case ModeRegularFile, ModeExecutable, ModeSymlink, ModeDirectory, ModeSubmodule:
		return true
	default:
		return false
	}
}

// ObjectType returns the type of object an entry with this mode points at.
func (m FileMode) ObjectType() utils.ObjectType {
	switch m {
	case ModeDirectory:
		return utils.TreeObjectType
	case ModeSubmodule:
		return utils.CommitObjectType
	default:
		return utils.BlobObjectType
	}
}

// TreeEntry represents a single entry in a tree object
type TreeEntry struct {
	mode FileMode
	name string
	hash string // hex form of the 20 raw bytes stored in the tree
}

// NewTreeEntry validates and creates an entry for building a tree.
func NewTreeEntry(mode FileMode, name string, hash string) (*TreeEntry, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("invalid file mode: %s", mode)
	}
	if name == "" || strings.ContainsAny(name, "/\x00") {
		return nil, fmt.Errorf("invalid entry name: %q", name)
	}
	hash, err := ValidateIdentifier(hash)
	if err != nil {
		return nil, err
	}
	return &TreeEntry{
		mode: mode,
		name: name,
		hash: hash,
	}, nil
}

func (e *TreeEntry) Mode() FileMode {
	return e.mode
}

func (e *TreeEntry) Name() string {
	return e.name
}

func (e *TreeEntry) Hash() string {
	return e.hash
}

func (e *TreeEntry) IsDirectory() bool {
	return e.mode == ModeDirectory
}

// Tree represents a tree object (directory)
type Tree struct {
	entries []TreeEntry
	hash    string
}

// NewTree creates a tree object from the list of Tree Entries
func NewTree(treeEntries []TreeEntry) (*Tree, error) {
	// Entries are stored sorted by name in ascending order
	entries := make([]TreeEntry, len(treeEntries))
	copy(entries, treeEntries)

	slices.SortStableFunc(entries, compareTreeEntries)

	for i := 1; i < len(entries); i++ {
		if entries[i].name == entries[i-1].name {
			return nil, fmt.Errorf("duplicate tree entry: %s", entries[i].name)
		}
	}

	treeContent := buildTreeContent(entries)
	hash, err := utils.ComputeHash(treeContent, utils.TreeObjectType)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash for tree: %w", err)
	}

	return &Tree{
		entries: entries,
		hash:    hash,
	}, nil
}

// compareTreeEntries implements git's tree entry sorting rules:
// - Entries are sorted by name
// - Directory names are treated as if they have a trailing "/" for comparison
// - This ensures correct ordering when directories and files have similar names
func compareTreeEntries(a, b TreeEntry) int {
	return strings.Compare(getSortableName(a), getSortableName(b))
}

// getSortableName returns the name used for sorting.
// For directories, appends "/" to follow git's sorting convention.
func getSortableName(entry TreeEntry) string {
	if entry.IsDirectory() {
		return entry.Name() + "/"
	}
	return entry.Name()
}

// buildTreeContent creates the raw tree content
// <mode> <name>\0<20-byte binary SHA> , ex:
// 100644 README.md\0[binary SHA for README blob]
// 100644 main.go\0[binary SHA for main.go blob]
// 40000 src\0[binary SHA for src/ tree]
func buildTreeContent(entries []TreeEntry) []byte {
	var buf bytes.Buffer

	for _, entry := range entries {
		buf.WriteString(string(entry.Mode()))
		buf.WriteByte(constants.SpaceByte)
		buf.WriteString(entry.Name())
		buf.WriteByte(constants.NullByte)

		// Hashes were validated by NewTreeEntry
		hashBytes, _ := hex.DecodeString(entry.Hash())
		buf.Write(hashBytes)
	}

	return buf.Bytes()
}

func (t *Tree) Type() utils.ObjectType {
	return utils.TreeObjectType
}

// Hash returns the SHA-1 hash of the tree
func (t *Tree) Hash() string {
	return t.hash
}

// Entries returns all tree entries
func (t *Tree) Entries() []TreeEntry {
	return t.entries
}

// Content returns the raw tree content
func (t *Tree) Content() []byte {
	return buildTreeContent(t.entries)
}

func (t *Tree) Data() []byte {
	return utils.FrameObject(utils.TreeObjectType, t.Content())
}

// String returns a human-readable representation
func (t *Tree) String() string {
	return fmt.Sprintf("Tree{hash: %s, entries: %d}", t.hash, len(t.entries))
}

// ParseTree reads the tree object with the given hash and decodes its entries.
func (store *ObjectStore) ParseTree(hash string) ([]TreeEntry, error) {
	objectType, content, err := store.ReadObject(hash)
	if err != nil {
		return nil, err
	}
	if objectType != utils.TreeObjectType {
		return nil, fmt.Errorf("%w: %s is a %s, not a %s", ErrTypeMismatch, hash, objectType, utils.TreeObjectType)
	}

	entries, err := ParseTreeContent(content)
	if err != nil {
		return nil, fmt.Errorf("tree %s: %w", hash, err)
	}
	return entries, nil
}

// ParseTreeContent decodes packed "<mode> <name>\0<20 bytes>" records until content is exhausted.
// Entries are returned in the order they appear; modes are not validated.
func ParseTreeContent(content []byte) ([]TreeEntry, error) {
	var entries []TreeEntry

	cursor := 0
	for cursor < len(content) {
		start := cursor

		spaceIndex := bytes.IndexByte(content[cursor:], constants.SpaceByte)
		if spaceIndex == -1 {
			return nil, fmt.Errorf("%w at offset %d: no space after mode", ErrMalformedEntry, start)
		}
		mode := FileMode(content[cursor : cursor+spaceIndex])
		cursor += spaceIndex + 1

		nullByteIndex := bytes.IndexByte(content[cursor:], constants.NullByte)
		if nullByteIndex == -1 {
			return nil, fmt.Errorf("%w at offset %d: no null byte after name", ErrMalformedEntry, start)
		}
		name := string(content[cursor : cursor+nullByteIndex])
		cursor += nullByteIndex + 1

		if remaining := len(content) - cursor; remaining < constants.HashByteLength {
			return nil, fmt.Errorf("%w %q: need %d hash bytes, have %d",
				ErrTruncatedEntry, name, constants.HashByteLength, remaining)
		}
		hash := hex.EncodeToString(content[cursor : cursor+constants.HashByteLength])
		cursor += constants.HashByteLength

		entries = append(entries, TreeEntry{
			mode: mode,
			name: name,
			hash: hash,
		})
	}

	return entries, nil
}
