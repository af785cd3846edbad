package utils

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const MaxCertificateSize = 5 * 1024 * 1024 // 5 MB

var allowedCertificateExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ValidateCertificateFile enforces the upload rules for credential
// certificates: PDF or image only, at most 5 MB.
func ValidateCertificateFile(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedCertificateExtensions[ext] {
		return errors.New("Only PDF and image files (JPG, JPEG, PNG) are allowed.")
	}
	if file.Size > MaxCertificateSize {
		return errors.New("File size cannot exceed 5 MB.")
	}
	return nil
}
