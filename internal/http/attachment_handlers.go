package httpapi

import (
	"net/http"

	"education-backend-go/internal/models"
	"education-backend-go/internal/services"
)

const maxUploadMemory = 32 << 20

// UploadAttachments accepts one or more multipart form files under the
// "files" field and stores each through the blob gateway.
func (s *Server) UploadAttachments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		WriteError(w, http.StatusBadRequest, "No files supplied")
		return
	}
	var uploaded []models.Attachment
	err := s.withTx(r.Context(), func(registry *services.Registry) error {
		var err error
		uploaded, err = registry.Attachments.UploadFiles(r.Context(), files...)
		return err
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, uploaded)
}
