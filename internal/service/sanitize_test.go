package service

import (
	"strings"
	"testing"
)

// TestSanitizeName проверяет правила приведения имени к безопасному виду.
func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", "hello"},
		{"hello_world", "hello_world"},
		{"hello world", "hello_world"},
		{"report.pdf", "report.pdf"},
		// Цифры не входят в разрешённый набор — заменяются подчёркиванием
		{"report.v1.pdf", "report.v_.pdf"},
		// Серии точек не проходят
		{"a..b", "a._b"},
		// Подряд идущие замены схлопываются в одно подчёркивание
		{"file@#$%name", "file_name"},
		// Ведущие неразрешённые символы отбрасываются
		{"../../etc/passwd", "etc_passwd"},
		{".hidden", "hidden"},
		// Пустой вход и вход без разрешённых символов
		{"", "unnamed"},
		{"@#$%", "unnamed"},
		{"тест.файл", "тест.файл"},
	}

	for _, tt := range tests {
		result := sanitizeName(tt.input)
		if result != tt.expected {
			t.Errorf("sanitizeName(%q): ожидалось %q, получено %q", tt.input, tt.expected, result)
		}
	}
}

// TestSanitizeName_HeaderSafe проверяет, что опасные для HTTP-заголовка
// символы (кавычки, CR/LF, разделители путей) не попадают в результат.
func TestSanitizeName_HeaderSafe(t *testing.T) {
	inputs := []string{
		"evil\"name\r\nSet-Cookie: x",
		"a/b\\c",
		"quote\"inside",
		"line\nbreak",
	}

	for _, input := range inputs {
		result := sanitizeName(input)
		if strings.ContainsAny(result, "\"\r\n/\\") {
			t.Errorf("sanitizeName(%q) содержит опасные символы: %q", input, result)
		}
	}
}

// TestSanitizeName_Idempotent проверяет идемпотентность:
// повторная санитизация не меняет результат.
func TestSanitizeName_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"hello world",
		"report.v1.pdf",
		"a..b..c",
		"@#$%",
		"../../etc/passwd",
		"тест файл.txt",
		"a1b2c3d4-e5f6-7890-abcd-ef1234567890",
	}

	for _, input := range inputs {
		once := sanitizeName(input)
		twice := sanitizeName(once)
		if once != twice {
			t.Errorf("sanitizeName не идемпотентна для %q: %q → %q", input, once, twice)
		}
	}
}

// TestSanitizeName_NoConsecutive проверяет, что в результате нет
// подряд идущих точек и ведущих точек.
func TestSanitizeName_NoConsecutive(t *testing.T) {
	inputs := []string{
		"...a...b...",
		"..//..",
		"x....y",
	}

	for _, input := range inputs {
		result := sanitizeName(input)
		if strings.Contains(result, "..") {
			t.Errorf("sanitizeName(%q) содержит '..': %q", input, result)
		}
		if strings.HasPrefix(result, ".") {
			t.Errorf("sanitizeName(%q) начинается с точки: %q", input, result)
		}
		if result == "" {
			t.Errorf("sanitizeName(%q) вернула пустую строку", input)
		}
	}
}
