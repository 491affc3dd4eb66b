package dto

import "fmt"

// NotFoundError marks lookups for resources that do not exist or are not
// visible to the caller. The error handler maps it to HTTP 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ForbiddenError marks access to a resource owned by someone else.
type ForbiddenError struct {
	Resource string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("no access to this %s", e.Resource)
}

// UnsupportedFileTypeError rejects an upload before any byte is stored.
type UnsupportedFileTypeError struct {
	MimeType string
	Name     string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("file type %s is not supported (%s)", e.MimeType, e.Name)
}
