package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCertificateFile(t *testing.T) {
	cases := []struct {
		filename string
		size     int64
		wantErr  bool
	}{
		{"degree.pdf", 1024, false},
		{"degree.PDF", 1024, false},
		{"scan.jpg", 1024, false},
		{"scan.jpeg", MaxCertificateSize, false},
		{"scan.png", 1024, false},
		{"archive.zip", 1024, true},
		{"noextension", 1024, true},
		{"degree.pdf", MaxCertificateSize + 1, true},
	}

	for _, tc := range cases {
		err := ValidateCertificateFile(&multipart.FileHeader{Filename: tc.filename, Size: tc.size})
		if tc.wantErr {
			assert.Error(t, err, tc.filename)
		} else {
			assert.NoError(t, err, tc.filename)
		}
	}
}
