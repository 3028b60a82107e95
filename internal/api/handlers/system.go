// system.go — обработчик GET /free_space (свободное место на томе хранения).
package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	apierrors "github.com/bigkaa/picodrop/internal/api/errors"
	"github.com/bigkaa/picodrop/internal/api/middleware"
)

// DiskUsageFn — функция получения информации о дисковом пространстве
// тома хранения: total, used, available в байтах.
type DiskUsageFn func() (total, used, available int64, err error)

// SystemHandler — обработчик системных endpoints.
type SystemHandler struct {
	diskUsage DiskUsageFn
	logger    *slog.Logger
}

// NewSystemHandler создаёт обработчик системных endpoints.
func NewSystemHandler(diskUsage DiskUsageFn, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{
		diskUsage: diskUsage,
		logger:    logger.With(slog.String("component", "system_handler")),
	}
}

// FreeSpace обрабатывает GET /free_space.
// Возвращает свободное место на томе хранения в человекочитаемых
// двоичных единицах (база 1024), plain-text.
func (h *SystemHandler) FreeSpace(w http.ResponseWriter, _ *http.Request) {
	_, _, available, err := h.diskUsage()
	if err != nil {
		h.logger.Error("Ошибка запроса дискового пространства",
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Ошибка запроса свободного места")
		return
	}

	middleware.StorageFreeBytes.Set(float64(available))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, humanize.IBytes(uint64(available)))
}
