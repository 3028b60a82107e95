// Пакет service — бизнес-логика picodrop.
// upload.go — сервис загрузки файлов: генерация идентификатора,
// запись blob и sidecar-метаданных.
package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bigkaa/picodrop/internal/api/middleware"
	"github.com/bigkaa/picodrop/internal/domain/model"
	"github.com/bigkaa/picodrop/internal/storage/filestore"
	"github.com/bigkaa/picodrop/internal/storage/meta"
)

// UploadParams — параметры загрузки файла.
type UploadParams struct {
	// Reader — поток данных части multipart-формы
	Reader io.Reader
	// OriginalFilename — имя файла, заявленное клиентом (может отсутствовать)
	OriginalFilename string
	// ContentType — MIME-тип, заявленный клиентом (может отсутствовать)
	ContentType string
}

// UploadError — ошибка загрузки с HTTP-кодом.
// Message не содержит внутренних путей, детали уходят в лог.
type UploadError struct {
	StatusCode int
	Message    string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// UploadService — сервис загрузки файлов.
type UploadService struct {
	store  *filestore.FileStore
	logger *slog.Logger
}

// NewUploadService создаёт сервис загрузки файлов.
func NewUploadService(store *filestore.FileStore, logger *slog.Logger) *UploadService {
	return &UploadService{
		store:  store,
		logger: logger.With(slog.String("component", "upload_service")),
	}
}

// Upload загружает файл в хранилище и возвращает идентификатор.
//
// Поток:
//  1. Буферизация данных части в память (поток уже ограничен
//     MaxBytesReader на уровне handler — превышение лимита приходит
//     сюда ошибкой чтения)
//  2. Генерация идентификатора
//  3. Значения по умолчанию: имя ← идентификатор, MIME ← octet-stream
//  4. Запись blob
//  5. Запись sidecar-метаданных
//
// Порядок гарантирован: blob записывается строго до метаданных.
// Отката нет — сбой после записи blob оставляет blob-сироту без
// метаданных, скачивание такого идентификатора даёт жёсткую ошибку.
func (s *UploadService) Upload(params UploadParams) (string, *UploadError) {
	// 1. Буферизируем данные части целиком.
	// Обрыв соединения или превышение лимита тела обнаруживаются здесь,
	// до какой-либо записи на диск.
	data, err := io.ReadAll(params.Reader)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", &UploadError{
				StatusCode: http.StatusBadRequest,
				Message:    "Тело запроса превышает допустимый размер",
			}
		}
		s.logger.Warn("Ошибка чтения тела загрузки",
			slog.String("error", err.Error()),
		)
		return "", &UploadError{
			StatusCode: http.StatusBadRequest,
			Message:    "Ошибка чтения тела запроса",
		}
	}

	// 2. Генерируем идентификатор — единственный ключ хранения
	id := filestore.NewID()

	// 3. Значения по умолчанию для недоверенных полей
	originalName := params.OriginalFilename
	if originalName == "" {
		originalName = id
	}
	mimeType := params.ContentType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	// 4. Записываем blob
	size, err := s.store.SaveBlob(id, bytes.NewReader(data))
	if err != nil {
		middleware.OperationsTotal.WithLabelValues("upload", "error").Inc()
		s.logger.Error("Ошибка записи blob",
			slog.String("file_id", id),
			slog.String("error", err.Error()),
		)
		return "", &UploadError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Ошибка сохранения файла",
		}
	}

	// 5. Записываем sidecar-метаданные
	record := &model.FileMetadata{
		OriginalName: originalName,
		MimeType:     mimeType,
	}
	if err := meta.Write(s.store.MetaPath(id), record); err != nil {
		middleware.OperationsTotal.WithLabelValues("upload", "error").Inc()
		s.logger.Error("Ошибка записи метаданных, blob остаётся сиротой",
			slog.String("file_id", id),
			slog.String("error", err.Error()),
		)
		return "", &UploadError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Ошибка записи метаданных",
		}
	}

	middleware.OperationsTotal.WithLabelValues("upload", "success").Inc()

	s.logger.Info("Файл загружен",
		slog.String("file_id", id),
		slog.String("filename", originalName),
		slog.String("mime_type", mimeType),
		slog.Int64("size", size),
	)

	return id, nil
}
