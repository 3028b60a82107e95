// files.go — HTTP handlers файловых операций picodrop: Upload, Download.
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/picodrop/internal/api/errors"
	"github.com/bigkaa/picodrop/internal/service"
)

// FilesHandler — обработчик файловых endpoints.
type FilesHandler struct {
	uploadSvc   *service.UploadService
	downloadSvc *service.DownloadService
	// maxUploadSize — лимит размера тела запроса загрузки в байтах
	maxUploadSize int64
}

// NewFilesHandler создаёт обработчик файловых endpoints.
func NewFilesHandler(
	uploadSvc *service.UploadService,
	downloadSvc *service.DownloadService,
	maxUploadSize int64,
) *FilesHandler {
	return &FilesHandler{
		uploadSvc:     uploadSvc,
		downloadSvc:   downloadSvc,
		maxUploadSize: maxUploadSize,
	}
}

// Upload обрабатывает POST /upload.
// Multipart form, поле file. Тело ограничено maxUploadSize: лимит
// срабатывает по ходу чтения потока, без полной буферизации запроса.
// Успех — 200 с идентификатором файла в plain-text теле.
func (h *FilesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	mr, err := r.MultipartReader()
	if err != nil {
		apierrors.ValidationError(w, "Ожидается запрос multipart/form-data")
		return
	}

	// Перебираем части формы до первой с именем file
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				apierrors.ValidationError(w, "Тело запроса превышает допустимый размер")
				return
			}
			apierrors.ValidationError(w, "Некорректное тело multipart")
			return
		}

		if part.FormName() != "file" {
			part.Close()
			continue
		}

		id, upErr := h.uploadSvc.Upload(service.UploadParams{
			Reader:           part,
			OriginalFilename: part.FileName(),
			ContentType:      part.Header.Get("Content-Type"),
		})
		part.Close()

		if upErr != nil {
			apierrors.WriteError(w, upErr.StatusCode, upErr.Message)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, id)
		return
	}

	apierrors.ValidationError(w, "В форме отсутствует поле file")
}

// Download обрабатывает GET /file/{id}.
// Отдаёт blob с заголовками, восстановленными из sidecar-метаданных.
func (h *FilesHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if dErr := h.downloadSvc.Serve(w, r, id); dErr != nil {
		apierrors.WriteError(w, dErr.StatusCode, dErr.Message)
	}
}
