package services

import (
	"context"
	"mime/multipart"

	"education-backend-go/internal/models"
	"education-backend-go/internal/store"
	"education-backend-go/internal/storage"
)

type AttachmentService struct {
	attachments store.Store[models.Attachment]
	blobs       *storage.BlobStore
}

func NewAttachmentService(attachments store.Store[models.Attachment], blobs *storage.BlobStore) *AttachmentService {
	return &AttachmentService{attachments: attachments, blobs: blobs}
}

// UploadFiles pushes each form file to the blob store and persists an
// attachment row per upload. Storage failures surface as NotCreated (or
// FileTooLarge for oversized blobs) from the gateway.
func (s *AttachmentService) UploadFiles(ctx context.Context, files ...*multipart.FileHeader) ([]models.Attachment, error) {
	uploaded := make([]models.Attachment, 0, len(files))
	for _, file := range files {
		ref, err := s.blobs.UploadForm(ctx, file)
		if err != nil {
			return nil, err
		}
		attachment, err := s.attachments.Create(ctx, models.Attachment{
			FileURL:       ref.PublicURL,
			FileName:      ref.Name,
			FileExtension: ref.Extension,
			FileSize:      ref.Size,
		})
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, attachment)
	}
	return uploaded, nil
}

func (s *AttachmentService) Get(ctx context.Context, filter store.Filter) (models.Attachment, error) {
	return s.attachments.Get(ctx, filter)
}

func (s *AttachmentService) GetAll(ctx context.Context) ([]models.Attachment, error) {
	return s.attachments.GetAll(ctx)
}

func (s *AttachmentService) Delete(ctx context.Context, attachmentID int64) error {
	return s.attachments.Delete(ctx, store.Where("id", attachmentID))
}
