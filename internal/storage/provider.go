// Package storage provides the output directories the sync pipeline writes
// documents and assets into, and the purge that empties them.
package storage

// Provider is a flat output directory.
type Provider interface {
	// Root returns the absolute directory path.
	Root() string
	// Write atomically writes content to name (relative to root).
	Write(name string, content []byte) error
	// CopyFile atomically copies the file at src to name (relative to root).
	CopyFile(src, name string) error
	// Names lists the regular files directly under root.
	Names() ([]string, error)
}
