package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/etuition/tutoria/configs"
	"github.com/google/uuid"
)

// UploadedCertificate identifies a stored certificate blob.
type UploadedCertificate struct {
	URL      string
	PublicID string
}

// UploadCertificate stores one credential file in Cloudinary under
// certificates/{username}/{label} and returns its URL and public ID.
func UploadCertificate(file *multipart.FileHeader, username, label string) (*UploadedCertificate, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     uuid.New().String(),
		Folder:       fmt.Sprintf("certificates/%s/%s", username, label),
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, src, uploadParams)
	if err != nil {
		return nil, err
	}

	return &UploadedCertificate{
		URL:      uploadResult.SecureURL,
		PublicID: uploadResult.PublicID,
	}, nil
}

// DeleteCertificate destroys the stored blob so credential deletion leaves
// no orphaned files behind.
func DeleteCertificate(publicID string) error {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "raw",
	})
	return err
}
