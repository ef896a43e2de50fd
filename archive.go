package binsweep

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const archiveExtension = ".json"

// File is an archived bin with associated metadata.
type File struct {
	Name    string
	Size    int64
	Payload []byte
}

// Archive is a plugin that saves the contents of every found bin to <directory>/<bin>.json.
type Archive struct {
	Directory string
}

// NewArchive creates the archive directory if needed.
func NewArchive(directory string) (*Archive, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}
	return &Archive{Directory: directory}, nil
}

// OnSuccess writes the raw body of the bin to disk.
func (a *Archive) OnSuccess(result *Result) error {
	if result.Bin == "" || result.Bin == "." || result.Bin == ".." || strings.ContainsAny(result.Bin, `/\`) {
		return fmt.Errorf("bin %q can't be used as a file name", result.Bin)
	}

	path := filepath.Join(a.Directory, result.Bin+archiveExtension)
	return os.WriteFile(path, []byte(result.Body), 0o644)
}

// Name identifies the archive in logs.
func (a *Archive) Name() string {
	return "archive"
}

// FileFrom loads an archived bin from the filesystem and wraps it in our native File type.
// The file name without its extension is the bin id.
func FileFrom(path string) (*File, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &File{
		Name:    strings.TrimSuffix(filepath.Base(path), archiveExtension),
		Size:    int64(len(fileBytes)),
		Payload: fileBytes,
	}, nil
}

// ArchiveFrom lists every bin archived in a directory, ordered by bin id.
func ArchiveFrom(directory string) ([]*File, error) {
	entries, err := os.ReadDir(directory)
	files := []*File{}
	if err != nil {
		return files, err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != archiveExtension {
			continue
		}

		file, err := FileFrom(filepath.Join(directory, entry.Name()))
		if err != nil {
			return files, err
		}

		files = append(files, file)
	}

	return files, nil
}
