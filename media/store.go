package media

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store defines the interface for saving, retrieving, and deleting media files
type Store interface {
	// Save stores data from reader under a storage class and optional
	// relative directory hint (e.g. an album id). An empty filenameHint
	// generates a UUID name.
	// returns the final relative path used and error
	Save(class StorageClass, relativeDirHint string, filenameHint string, data io.Reader) (string, error)
	// Get retrieves a reader for a stored file
	Get(relativePath string) (io.ReadCloser, os.FileInfo, error)
	// Delete removes a stored file
	Delete(relativePath string) error
	// GetFullPath returns the absolute filesystem path for a relative path
	GetFullPath(relativePath string) (string, error)
	// EnsureDir makes sure a specific storage class directory exists
	EnsureDir(class StorageClass) (string, error)
}

// Uploader is the upload collaborator the layout core consumes: it takes a
// file and a path prefix and yields the stored URL. The core only ever uses
// the URL and a MIME-derived type tag.
type Uploader interface {
	Upload(data io.Reader, pathPrefix, filename string) (url string, err error)
}

// LocalStorage implements Store and Uploader on the local filesystem
type LocalStorage struct {
	basePath        string                  // absolute path to the media storage root
	subDirMap       map[StorageClass]string // maps StorageClass to subdirectory name (e.g., "uploads")
	resolvedPathMap map[StorageClass]string // maps StorageClass to full absolute path
}

// NewLocalStorage creates a new local filesystem store
func NewLocalStorage(basePath string, subDirs map[StorageClass]string) (*LocalStorage, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid base storage path '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absBasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base storage directory '%s': %w", absBasePath, err)
	}

	resolvedPaths := make(map[StorageClass]string)
	for class, subDir := range subDirs {
		fullPath := filepath.Join(absBasePath, subDir)
		if !strings.HasPrefix(filepath.Clean(fullPath), absBasePath) {
			return nil, fmt.Errorf("invalid subdirectory configuration: '%s' resolves outside base path '%s'", subDir, absBasePath)
		}
		resolvedPaths[class] = fullPath
	}

	log.Printf("media.store: Initialized LocalStorage at %s", absBasePath)
	return &LocalStorage{
		basePath:        absBasePath,
		subDirMap:       subDirs,
		resolvedPathMap: resolvedPaths,
	}, nil
}

// getClassDir resolves the absolute path for a given storage class
func (ls *LocalStorage) getClassDir(class StorageClass) (string, error) {
	dirPath, ok := ls.resolvedPathMap[class]
	if !ok {
		log.Printf("media.store: Warning - storage class '%s' not explicitly configured, using as subdirectory name", class)
		dirPath = filepath.Join(ls.basePath, string(class))

		if !strings.HasPrefix(filepath.Clean(dirPath), ls.basePath) {
			return "", fmt.Errorf("storage class '%s' resolves outside base path", class)
		}
		ls.resolvedPathMap[class] = dirPath
	}
	return dirPath, nil
}

// EnsureDir creates the directory for the storage class if it doesn't exist
func (ls *LocalStorage) EnsureDir(class StorageClass) (string, error) {
	dirPath, err := ls.getClassDir(class)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", fmt.Errorf("failed to ensure directory '%s': %w", dirPath, err)
	}
	return dirPath, nil
}

// Save data to the store. filenameHint can be empty to generate a UUID name
// relativeDirHint allows for further structure within the class's main dir (e.g., album ID)
func (ls *LocalStorage) Save(class StorageClass, relativeDirHint string, filenameHint string, data io.Reader) (string, error) {
	baseClassDir, err := ls.EnsureDir(class)
	if err != nil {
		return "", err
	}

	targetDir := baseClassDir
	if relativeDirHint != "" {
		targetDir = filepath.Join(baseClassDir, relativeDirHint)

		if !strings.HasPrefix(filepath.Clean(targetDir), baseClassDir) {
			return "", fmt.Errorf("invalid relative directory hint '%s'", relativeDirHint)
		}

		if err := os.MkdirAll(targetDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create sub-directory '%s': %w", targetDir, err)
		}
	}

	finalFilename := filenameHint
	if finalFilename == "" {
		finalFilename = uuid.NewString()
	}

	fullSavePath := filepath.Join(targetDir, finalFilename)

	outFile, err := os.Create(fullSavePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file '%s': %w", fullSavePath, err)
	}
	defer outFile.Close()

	_, err = io.Copy(outFile, data)
	if err != nil {
		outFile.Close()
		os.Remove(fullSavePath)
		return "", fmt.Errorf("failed to write data to '%s': %w", fullSavePath, err)
	}

	relativePath, err := filepath.Rel(ls.basePath, fullSavePath)
	if err != nil {
		log.Printf("media.store: Error calculating relative path for '%s' from '%s': %v", fullSavePath, ls.basePath, err)
		return "", fmt.Errorf("internal error calculating relative path: %w", err)
	}

	log.Printf("media.store: Saved file to %s", fullSavePath)
	return filepath.ToSlash(relativePath), nil
}

// Upload implements the upload collaborator over Save: the stored relative
// path doubles as the URL the layout core consumes.
func (ls *LocalStorage) Upload(data io.Reader, pathPrefix, filename string) (string, error) {
	if filename == "" {
		filename = uuid.NewString()
	}
	return ls.Save(StorageClassUpload, pathPrefix, filename, data)
}

func (ls *LocalStorage) Get(relativePath string) (io.ReadCloser, os.FileInfo, error) {
	fullPath, err := ls.GetFullPath(relativePath)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("file not found at '%s': %w", relativePath, err)
		}
		return nil, nil, fmt.Errorf("failed to open file '%s': %w", relativePath, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to stat file '%s': %w", relativePath, err)
	}

	return file, info, nil
}

// Delete removes a stored file
func (ls *LocalStorage) Delete(relativePath string) error {
	fullPath, err := ls.GetFullPath(relativePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil // If GetFullPath determines it doesn't exist, treat as success
		}
		return err
	}

	err = os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) { // Ignore "not exist" errors
		return fmt.Errorf("failed to delete file '%s': %w", relativePath, err)
	}
	if err == nil {
		log.Printf("media.store: Deleted file %s", fullPath)
	}
	return nil
}

// GetFullPath calculates the absolute path and performs security check
func (ls *LocalStorage) GetFullPath(relativePath string) (string, error) {
	// clean the relative path first to prevent simple traversal tricks
	cleanRelativePath := filepath.Clean(relativePath)

	fullPath := filepath.Join(ls.basePath, cleanRelativePath)

	absFullPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", relativePath, err)
	}

	if !strings.HasPrefix(absFullPath, ls.basePath) {
		return "", fmt.Errorf("invalid path: access denied for '%s'", relativePath)
	}

	if _, err := os.Stat(absFullPath); err != nil {
		if os.IsNotExist(err) {
			return absFullPath, os.ErrNotExist
		}
	}

	return absFullPath, nil
}
