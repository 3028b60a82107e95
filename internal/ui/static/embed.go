// Пакет static — встроенные статические ресурсы picodrop.
// Содержит страницу загрузки с drag-and-drop и её скрипт.
// Файлы встраиваются в бинарник через //go:embed и раздаются через HTTP.
package static

import (
	"embed"
	"net/http"
)

// content — встроенная файловая система со статическими ресурсами.
//
//go:embed index.html main.js style.css
var content embed.FS

// FileSystem возвращает http.FileSystem для обработки запросов к /static/*.
// Файлы доступны по путям вида /static/main.js, /static/style.css.
func FileSystem() http.FileSystem {
	return http.FS(content)
}

// Index отдаёт встроенную главную страницу по GET /.
func Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, content, "index.html")
}
