package service

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

// uploadFixture загружает файл и возвращает его идентификатор.
func uploadFixture(t *testing.T, svc *UploadService, content []byte, name, mime string) string {
	t.Helper()
	id, upErr := svc.Upload(UploadParams{
		Reader:           bytes.NewReader(content),
		OriginalFilename: name,
		ContentType:      mime,
	})
	if upErr != nil {
		t.Fatalf("ошибка загрузки fixture: %v", upErr)
	}
	return id
}

// TestServe проверяет скачивание: тело, Content-Type и
// Content-Disposition восстанавливаются из метаданных.
func TestServe(t *testing.T) {
	store := newTestStore(t)
	uploadSvc := NewUploadService(store, testLogger())
	downloadSvc := NewDownloadService(store, testLogger())

	content := []byte("содержимое для скачивания")
	id := uploadFixture(t, uploadSvc, content, "report.pdf", "application/pdf")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/file/"+id, nil)

	if dErr := downloadSvc.Serve(w, r, id); dErr != nil {
		t.Fatalf("ошибка скачивания: %v", dErr)
	}

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("ожидался код 200, получен %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type: получено %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != `attachment; filename="report.pdf"` {
		t.Errorf("Content-Disposition: получено %q", cd)
	}

	body, _ := io.ReadAll(resp.Body)
	if !bytes.Equal(body, content) {
		t.Error("тело ответа не совпадает с загруженным")
	}
}

// TestServe_SanitizedName проверяет санитизацию имени файла в
// Content-Disposition: цифры и спецсимволы заменяются подчёркиванием.
func TestServe_SanitizedName(t *testing.T) {
	store := newTestStore(t)
	uploadSvc := NewUploadService(store, testLogger())
	downloadSvc := NewDownloadService(store, testLogger())

	id := uploadFixture(t, uploadSvc, []byte("x"), "../etc/passwd v2.txt", "text/plain")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/file/"+id, nil)

	if dErr := downloadSvc.Serve(w, r, id); dErr != nil {
		t.Fatalf("ошибка скачивания: %v", dErr)
	}

	cd := w.Header().Get("Content-Disposition")
	if cd != `attachment; filename="etc_passwd_v_.txt"` {
		t.Errorf("Content-Disposition: получено %q", cd)
	}
}

// TestServe_InvalidID проверяет 404 для идентификатора
// некорректного формата: он неотличим от отсутствующего файла.
func TestServe_InvalidID(t *testing.T) {
	store := newTestStore(t)
	downloadSvc := NewDownloadService(store, testLogger())

	ids := []string{"", "not-a-uuid", "../../etc/passwd", "..%2F..%2Fetc"}

	for _, id := range ids {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/file/x", nil)

		dErr := downloadSvc.Serve(w, r, id)
		if dErr == nil {
			t.Errorf("Serve(%q): ожидалась ошибка", id)
			continue
		}
		if dErr.StatusCode != http.StatusNotFound {
			t.Errorf("Serve(%q): ожидался код 404, получен %d", id, dErr.StatusCode)
		}
	}
}

// TestServe_NotFound проверяет 404 для несуществующего файла.
func TestServe_NotFound(t *testing.T) {
	store := newTestStore(t)
	downloadSvc := NewDownloadService(store, testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/file/x", nil)

	dErr := downloadSvc.Serve(w, r, "a1b2c3d4-e5f6-4890-abcd-ef1234567890")
	if dErr == nil {
		t.Fatal("ожидалась ошибка")
	}
	if dErr.StatusCode != http.StatusNotFound {
		t.Errorf("ожидался код 404, получен %d", dErr.StatusCode)
	}
}

// TestServe_MissingMeta проверяет жёсткий 500, когда blob существует,
// а sidecar-метаданные отсутствуют.
func TestServe_MissingMeta(t *testing.T) {
	store := newTestStore(t)
	uploadSvc := NewUploadService(store, testLogger())
	downloadSvc := NewDownloadService(store, testLogger())

	id := uploadFixture(t, uploadSvc, []byte("orphan"), "f.txt", "text/plain")
	if err := os.Remove(store.MetaPath(id)); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/file/x", nil)

	dErr := downloadSvc.Serve(w, r, id)
	if dErr == nil {
		t.Fatal("ожидалась ошибка")
	}
	if dErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("ожидался код 500, получен %d", dErr.StatusCode)
	}
}

// TestServe_CorruptMeta проверяет жёсткий 500 при повреждённых
// метаданных: никакой подстановки значений по умолчанию.
func TestServe_CorruptMeta(t *testing.T) {
	store := newTestStore(t)
	uploadSvc := NewUploadService(store, testLogger())
	downloadSvc := NewDownloadService(store, testLogger())

	id := uploadFixture(t, uploadSvc, []byte("data"), "f.txt", "text/plain")
	if err := os.WriteFile(store.MetaPath(id), []byte("{broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/file/x", nil)

	dErr := downloadSvc.Serve(w, r, id)
	if dErr == nil {
		t.Fatal("ожидалась ошибка")
	}
	if dErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("ожидался код 500, получен %d", dErr.StatusCode)
	}
}
