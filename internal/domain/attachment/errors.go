package attachment

import "errors"

var (
	ErrFileTooLarge       = errors.New("file exceeds the maximum upload size")
	ErrFileTypeNotAllowed = errors.New("file type is not allowed")
	ErrFileRequired       = errors.New("file is required")
	ErrInvalidImage       = errors.New("image could not be decoded")
)
