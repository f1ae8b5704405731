package fshelper

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bstardust/opencamera-meta-export/pkg/common"
)

// imageExt lists the extensions that can carry an EXIF block.
var imageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".jpe":  true,
	".tif":  true,
	".tiff": true,
}

// IsImageFile checks if a path looks like an EXIF-bearing image.
func IsImageFile(path string) bool {
	return imageExt[strings.ToLower(filepath.Ext(path))]
}

// CheckRegularFile verifies that the path references a regular file.
func CheckRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return common.NewFileNotFound(path)
		}
		return fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return common.NewFileNotFound(path)
	}
	return nil
}

// CollectImages expands a list of files, directories, and glob patterns into
// the image paths they reference. Directories are walked recursively; files
// inside them that are not images are ignored. An explicitly named file is
// returned as-is so a bad argument fails loudly later instead of vanishing.
func CollectImages(paths []string) ([]string, error) {
	var images []string

	for _, path := range paths {
		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %s: %w", path, err)
		}

		if len(matches) == 0 {
			if _, err := os.Stat(path); err != nil {
				if os.IsNotExist(err) {
					return nil, common.NewFileNotFound(path)
				}
				return nil, fmt.Errorf("error accessing path %s: %w", path, err)
			}
			matches = []string{path}
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, fmt.Errorf("error accessing path %s: %w", match, err)
			}

			if !info.IsDir() {
				images = append(images, match)
				continue
			}

			err = filepath.WalkDir(match, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && IsImageFile(p) {
					images = append(images, p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("error walking directory %s: %w", match, err)
			}
		}
	}

	return images, nil
}
