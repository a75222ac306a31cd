package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// DefaultUploadFolder holds images embedded in entry content.
const DefaultUploadFolder = "reflect/entries"

// CloudinaryService stores entry images. Each user gets a folder and every
// upload a random public id, so file names never leak into URLs.
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryService{cld: cld}, nil
}

// UploadImage stores an image under folder/userID and returns its HTTPS URL.
func (s *CloudinaryService) UploadImage(ctx context.Context, fh *multipart.FileHeader, userID, folder string) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	res, err := s.cld.Upload.Upload(ctx, file, imageUploadParams(folder, userID))
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

func imageUploadParams(folder, userID string) uploader.UploadParams {
	if folder == "" {
		folder = DefaultUploadFolder
	}
	return uploader.UploadParams{
		Folder:         path.Join(folder, userID),
		PublicID:       uuid.NewString(),
		ResourceType:   "image",
		Overwrite:      api.Bool(false),
		UniqueFilename: api.Bool(false),
		Tags:           api.CldAPIArray{"journal"},
	}
}
