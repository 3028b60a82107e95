// Пакет filestore — раскладка и операции с физическими файлами на диске.
// Ключ хранения — серверный UUID; blob и sidecar-файл метаданных лежат
// рядом под одним корнем и выводятся друг из друга детерминированно.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// MetaSuffix — суффикс sidecar-файла метаданных.
// Пример: "/uploads/<id>" → "/uploads/<id>.meta.json".
const MetaSuffix = ".meta.json"

// ErrInvalidID — идентификатор не соответствует формату генератора.
// Такие идентификаторы отклоняются до любого обращения к файловой системе.
var ErrInvalidID = errors.New("некорректный идентификатор файла")

// FileStore — управление физическими файлами под корневой директорией.
type FileStore struct {
	// dataDir — корневая директория хранения (PD_UPLOADS_DIR)
	dataDir string
}

// New создаёт новый FileStore. Проверяет и создаёт директорию,
// если она не существует.
func New(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию данных %s: %w", dataDir, err)
	}

	return &FileStore{dataDir: dataDir}, nil
}

// NewID генерирует новый идентификатор файла — случайный UUIDv4
// в каноническом 36-символьном представлении. Идентификаторы всегда
// генерируются сервером и никогда не выбираются клиентом.
func NewID() string {
	return uuid.New().String()
}

// ValidateID проверяет, что идентификатор соответствует формату генератора:
// ровно 36 символов канонической записи UUID. Всё остальное (разделители
// путей, "..", сокращённые и фигурные формы UUID) отклоняется, поэтому
// валидный идентификатор безопасен как компонент пути внутри dataDir.
func ValidateID(id string) error {
	if len(id) != 36 {
		return ErrInvalidID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

// BlobPath возвращает абсолютный путь blob для валидного идентификатора.
func (fs *FileStore) BlobPath(id string) string {
	return filepath.Join(fs.dataDir, id)
}

// MetaPath возвращает путь sidecar-файла метаданных для валидного
// идентификатора. Выводится из пути blob: тот же stem, суффикс MetaSuffix.
func (fs *FileStore) MetaPath(id string) string {
	return fs.BlobPath(id) + MetaSuffix
}

// SaveBlob записывает данные из reader в blob-файл идентификатора.
// Возвращает размер записанных данных.
//
// Паттерн: temp файл → запись → fsync → atomic rename.
// При ошибке temp файл удаляется, частично записанный blob не появляется.
func (fs *FileStore) SaveBlob(id string, reader io.Reader) (int64, error) {
	fullPath := fs.BlobPath(id)
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	size, err := io.Copy(f, reader)
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return 0, fmt.Errorf("ошибка записи данных: %w", err)
	}

	// fsync для гарантии записи на диск
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return 0, fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	return size, nil
}

// OpenBlob открывает blob для чтения и возвращает *os.File.
// Вызывающий код обязан закрыть файл. Ошибка отсутствия файла
// различима через os.IsNotExist.
func (fs *FileStore) OpenBlob(id string) (*os.File, error) {
	f, err := os.Open(fs.BlobPath(id))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// BlobExists проверяет существование blob на диске.
func (fs *FileStore) BlobExists(id string) bool {
	_, err := os.Stat(fs.BlobPath(id))
	return err == nil
}

// DataDir возвращает путь к корневой директории хранения.
func (fs *FileStore) DataDir() string {
	return fs.dataDir
}
