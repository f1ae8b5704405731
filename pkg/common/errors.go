package common

import "fmt"

// FileNotFoundError is returned when a path does not reference a regular file.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("no file found with path %s", e.Path)
}

// MetadataMissingError is returned when an image carries no EXIF block or no
// GPS sub-dictionary.
type MetadataMissingError struct {
	Path   string
	Reason string
}

func (e *MetadataMissingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Path)
}

// FieldMissingError is returned when a required field is absent from the
// decoded tag set.
type FieldMissingError struct {
	Field string
}

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("required field %s missing from metadata", e.Field)
}

func NewFileNotFound(path string) error {
	return &FileNotFoundError{Path: path}
}

func NewMetadataMissing(path, reason string) error {
	return &MetadataMissingError{Path: path, Reason: reason}
}

func NewFieldMissing(field string) error {
	return &FieldMissingError{Field: field}
}
