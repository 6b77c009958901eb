package constants

import "os"

// Command name constants used in tests and error messages.
// Cobra Use fields remain inline for CLI discoverability.
const (
	InitCmdName       = "init"
	HashObjectCmdName = "hash-object"
	CatFileCmdName    = "cat-file"
	LsTreeCmdName     = "ls-tree"
	MkTreeCmdName     = "mktree"
)

// Repository directory and file names define the metadata structure.
const (
	// GitDir is the default repository metadata directory.
	GitDir = ".git"

	// Objects stores content-addressable objects (blobs, trees).
	Objects = "objects"

	// Refs is created empty at init; nothing in the object database reads it.
	Refs = "refs"

	// Head points to the current branch.
	Head = "HEAD"
)

// Default repository values.
const (
	// DefaultBranch is the initial branch name for new repositories.
	DefaultBranch = "main"

	// DefaultRefPrefix is prepended to branch names in HEAD file.
	DefaultRefPrefix = "ref: refs/heads/"
)

// File system permissions for created files and directories.
const (
	// DirPerms grants read/write/execute to owner, read/execute to others (rwxr-xr-x).
	DirPerms os.FileMode = 0755

	// FilePerms grants read/write to owner, read-only to others (rw-r--r--).
	FilePerms os.FileMode = 0644

	// ObjectPerms makes stored objects read-only (r--r--r--).
	ObjectPerms os.FileMode = 0444
)

// Cryptographic hash properties.
const (
	// HashByteLength is byte length of SHA-1 hash (20 bytes).
	HashByteLength = 20

	// HashStringLength is hex string length of SHA-1 hash (40 characters).
	HashStringLength = 40

	// HashDirPrefixLength is subdirectory prefix length under objects/ (2 characters).
	HashDirPrefixLength = 2
)

// Object format constants.
const (
	// NullByte separates header from content in objects, and name from hash in tree entries.
	NullByte = '\x00'

	// SpaceByte separates type from length in headers, and mode from name in tree entries.
	SpaceByte = ' '
)

// Configuration keys shared by flags, environment and config file.
const (
	ConfigGitDir           = "git_dir"
	ConfigStrict           = "strict"
	ConfigCompressionLevel = "compression_level"
	ConfigVerbose          = "verbose"

	// EnvPrefix turns git_dir into GITODB_GIT_DIR.
	EnvPrefix = "GITODB"
)
