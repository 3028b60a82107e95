// download.go — сервис скачивания файлов.
package service

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/bigkaa/picodrop/internal/api/middleware"
	"github.com/bigkaa/picodrop/internal/storage/filestore"
	"github.com/bigkaa/picodrop/internal/storage/meta"
)

// DownloadService — сервис скачивания файлов.
type DownloadService struct {
	store  *filestore.FileStore
	logger *slog.Logger
}

// NewDownloadService создаёт сервис скачивания файлов.
func NewDownloadService(store *filestore.FileStore, logger *slog.Logger) *DownloadService {
	return &DownloadService{
		store:  store,
		logger: logger.With(slog.String("component", "download_service")),
	}
}

// DownloadError — ошибка скачивания с HTTP-кодом.
// Message не содержит внутренних путей, детали уходят в лог.
type DownloadError struct {
	StatusCode int
	Message    string
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// Serve отдаёт файл клиенту через http.ServeContent.
// Range requests и кэширующие заголовки обрабатывает http.ServeContent.
//
// Поток:
//  1. Валидация идентификатора до любого обращения к ФС.
//     Некорректный идентификатор неотличим от отсутствующего (404),
//     чтобы не раскрывать структуру хранилища.
//  2. Открытие blob (404 при отсутствии)
//  3. Чтение sidecar-метаданных. Blob без читаемых метаданных — ошибка
//     консистентности хранилища: жёсткий 500, никаких значений по
//     умолчанию.
//  4. Заголовки: Content-Disposition с санитизированным именем,
//     Content-Type из метаданных как есть.
func (s *DownloadService) Serve(w http.ResponseWriter, r *http.Request, id string) *DownloadError {
	// 1. Валидация идентификатора
	if err := filestore.ValidateID(id); err != nil {
		return &DownloadError{
			StatusCode: http.StatusNotFound,
			Message:    "Файл не найден",
		}
	}

	// 2. Открываем blob
	file, err := s.store.OpenBlob(id)
	if err != nil {
		if os.IsNotExist(err) {
			return &DownloadError{
				StatusCode: http.StatusNotFound,
				Message:    "Файл не найден",
			}
		}
		s.logger.Error("Ошибка открытия blob",
			slog.String("file_id", id),
			slog.String("error", err.Error()),
		)
		return &DownloadError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Ошибка чтения файла",
		}
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		s.logger.Error("Ошибка получения stat blob",
			slog.String("file_id", id),
			slog.String("error", err.Error()),
		)
		return &DownloadError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Ошибка чтения файла",
		}
	}

	// 3. Читаем sidecar-метаданные
	record, err := meta.Read(s.store.MetaPath(id))
	if err != nil {
		middleware.OperationsTotal.WithLabelValues("download", "error").Inc()
		s.logger.Error("Blob существует, но метаданные не читаются",
			slog.String("file_id", id),
			slog.String("error", err.Error()),
		)
		return &DownloadError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Ошибка чтения метаданных файла",
		}
	}

	// 4. Заголовки: имя файла санитизируется, MIME-тип отдаётся как есть
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", sanitizeName(record.OriginalName)))
	w.Header().Set("Content-Type", record.MimeType)

	// http.ServeContent автоматически обрабатывает:
	//   - Range requests (206 Partial Content)
	//   - If-Modified-Since
	//   - Content-Length
	http.ServeContent(w, r, "", stat.ModTime(), file)

	middleware.OperationsTotal.WithLabelValues("download", "success").Inc()

	s.logger.Debug("Файл скачан",
		slog.String("file_id", id),
		slog.String("filename", record.OriginalName),
		slog.Int64("size", stat.Size()),
	)

	return nil
}
