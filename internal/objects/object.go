package objects

import "github.com/KostasZigo/gitodb/utils"

// Object represents any object that can be stored.
// Blobs and trees implement this interface.
type Object interface {
	// Type returns the header label of the object
	Type() utils.ObjectType

	// Hash returns the SHA-1 hash of the object
	Hash() string

	// Data returns the complete object data including header
	// Format: "<type> <size>\0<content>"
	Data() []byte

	// String summarizes the object for logs
	String() string
}
