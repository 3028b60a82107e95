// Точка входа picodrop — минимального HTTP-сервиса обмена файлами.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/bigkaa/picodrop/internal/api/handlers"
	"github.com/bigkaa/picodrop/internal/config"
	"github.com/bigkaa/picodrop/internal/server"
	"github.com/bigkaa/picodrop/internal/service"
	"github.com/bigkaa/picodrop/internal/storage/filestore"
)

func main() {
	// .env для локальной разработки; отсутствие файла — не ошибка
	_ = godotenv.Load()

	// Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Порт — опциональный последний аргумент командной строки
	cfg.Port, err = config.ParsePort(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("picodrop запускается",
		slog.String("version", config.Version),
		slog.String("uploads_dir", cfg.UploadsDir),
		slog.Int("port", cfg.Port),
		slog.Int64("max_upload_size", cfg.MaxUploadSize),
	)

	// --- Инициализация компонентов ---

	// 1. Файловое хранилище
	store, err := filestore.New(cfg.UploadsDir)
	if err != nil {
		logger.Error("Ошибка инициализации FileStore", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Сервисы
	uploadSvc := service.NewUploadService(store, logger)
	downloadSvc := service.NewDownloadService(store, logger)

	// 3. Handlers
	filesHandler := handlers.NewFilesHandler(uploadSvc, downloadSvc, cfg.MaxUploadSize)
	systemHandler := handlers.NewSystemHandler(diskUsageFn(cfg.UploadsDir), logger)
	healthHandler := handlers.NewHealthHandler(cfg.UploadsDir)

	// 4. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, filesHandler, systemHandler, healthHandler)

	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("picodrop остановлен")
}

// diskUsageFn возвращает функцию для получения информации об ёмкости диска.
func diskUsageFn(uploadsDir string) handlers.DiskUsageFn {
	return func() (int64, int64, int64, error) {
		return getDiskUsage(uploadsDir)
	}
}
