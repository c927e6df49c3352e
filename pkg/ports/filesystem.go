package ports

// FileSystem abstracts the file operations used to export frames and reports.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating parent directories as needed.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)
}
