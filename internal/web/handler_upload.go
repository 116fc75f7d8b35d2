package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/vbonduro/shorescore/internal/domain"
	"github.com/vbonduro/shorescore/internal/photostore"
)

const maxPhotoSize = 20 * 1024 * 1024 // 20 MB

// multipartOverhead is the room left for form boundaries and headers on top
// of the photo itself.
const multipartOverhead = 64 * 1024

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME sniffs data and reports its MIME type if the photo store
// accepts it. http.DetectContentType has no WebP signature, so WebP is
// checked first.
func allowedImageMIME(data []byte) (string, bool) {
	mime := http.DetectContentType(data)
	if isWebP(data) {
		mime = "image/webp"
	}
	if _, ok := photostore.Extension(mime); !ok {
		return "", false
	}
	return mime, true
}

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	locationID, err := parseID(r)
	if err != nil {
		s.badRequest(w, "invalid location id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxPhotoBytes+multipartOverhead)
	if err := r.ParseMultipartForm(s.maxPhotoBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "photo too large"})
			return
		}
		s.badRequest(w, "failed to parse form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.badRequest(w, "image file required")
		return
	}
	defer closeWithLog(file, "upload file", s.logger)
	if header.Size > s.maxPhotoBytes {
		s.writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "photo too large"})
		return
	}

	imageData, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("read upload failed", "location_id", locationID, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "failed to read file"})
		return
	}

	mimeType, ok := allowedImageMIME(imageData)
	if !ok {
		s.badRequest(w, "unsupported image format")
		return
	}

	photo, err := s.locations.UploadPhoto(r.Context(), locationID, imageData, mimeType)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, photoView{ID: photo.ID, MimeType: photo.MimeType, UploadedAt: photo.UploadedAt})
}

func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	locationID, err := parseID(r)
	if err != nil {
		s.badRequest(w, "invalid location id")
		return
	}

	photo, err := s.locations.LatestPhoto(r.Context(), locationID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	reader, mimeType, err := s.photoStore.Get(r.Context(), photo.StorageKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("photo file missing", "location_id", locationID, "photo_id", photo.ID, "storage_key", photo.StorageKey)
		}
		s.writeError(w, r, err)
		return
	}
	defer closeWithLog(reader, "photo reader", s.logger)

	w.Header().Set("Content-Type", mimeType)
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write photo failed", "location_id", locationID, "error", err)
	}
}

func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	photoID, err := parseID(r)
	if err != nil {
		s.badRequest(w, "invalid photo id")
		return
	}

	if err := s.locations.DeletePhoto(r.Context(), photoID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
