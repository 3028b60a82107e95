// Пакет model — доменные модели picodrop.
package model

// FileMetadata — запись метаданных одного загруженного файла.
// Хранится в sidecar-файле *.meta.json рядом с blob и является
// единственным источником истины для имени и MIME-типа при скачивании.
type FileMetadata struct {
	// OriginalName — имя файла, заявленное клиентом при загрузке.
	// Недоверенные данные: перед встраиванием в HTTP-заголовок
	// обязательно проходят санитизацию.
	OriginalName string `json:"original_name"`
	// MimeType — MIME-тип, заявленный клиентом при загрузке.
	// Отдаётся в Content-Type как есть.
	MimeType string `json:"mime_type"`
}
