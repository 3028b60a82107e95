// Пакет meta — кодек sidecar-файлов метаданных (*.meta.json).
// Каждый blob в хранилище имеет сопутствующий файл метаданных,
// записанный под тем же идентификатором. Все операции записи
// выполняются атомарно: temp → fsync → rename.
package meta

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bigkaa/picodrop/internal/domain/model"
)

// maxMetaFileSize — максимальный допустимый размер сериализованных
// метаданных (4 КБ). Ограничение гарантирует атомарность записи.
const maxMetaFileSize = 4096

// Encode сериализует метаданные в JSON-представление sidecar-файла.
func Encode(m *model.FileMetadata) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации метаданных: %w", err)
	}
	return data, nil
}

// Decode десериализует метаданные из содержимого sidecar-файла.
// Возвращает ошибку, если JSON невалиден или отсутствует обязательное
// поле: повреждённые метаданные — это ошибка консистентности хранилища,
// подстановка значений по умолчанию недопустима.
func Decode(data []byte) (*model.FileMetadata, error) {
	var raw struct {
		OriginalName *string `json:"original_name"`
		MimeType     *string `json:"mime_type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ошибка десериализации метаданных: %w", err)
	}
	if raw.OriginalName == nil {
		return nil, fmt.Errorf("отсутствует обязательное поле original_name")
	}
	if raw.MimeType == nil {
		return nil, fmt.Errorf("отсутствует обязательное поле mime_type")
	}

	return &model.FileMetadata{
		OriginalName: *raw.OriginalName,
		MimeType:     *raw.MimeType,
	}, nil
}

// Write атомарно записывает метаданные в sidecar-файл.
// Паттерн: JSON → temp файл → fsync → atomic rename.
// Возвращает ошибку, если сериализованные данные превышают 4 КБ.
func Write(path string, m *model.FileMetadata) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}

	// Проверка размера для гарантии атомарности
	if len(data) > maxMetaFileSize {
		return fmt.Errorf("размер метаданных (%d байт) превышает максимум (%d байт)", len(data), maxMetaFileSize)
	}

	tmpPath := path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка записи: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	return nil
}

// Read читает и десериализует метаданные из sidecar-файла.
// Возвращает ошибку, если файл не найден или содержимое повреждено.
func Read(path string) (*model.FileMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения метаданных %s: %w", path, err)
	}

	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
