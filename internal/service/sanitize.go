// sanitize.go — приведение недоверенного имени файла к безопасному виду.
package service

import "unicode"

// sanitizeName преобразует произвольную недоверенную строку в отображаемое
// имя, безопасное для встраивания в значение HTTP-заголовка внутри кавычек
// и для повторного использования как компонент пути. Тотальная функция,
// никогда не завершается ошибкой.
//
// Правила:
//   - буквы и подчёркивание проходят без изменений;
//   - точка проходит, только если предыдущий выведенный символ — не точка
//     (схлопывает серии точек, блокируя последовательности "..");
//   - любой другой символ заменяется одним подчёркиванием, подряд идущие
//     замены схлопываются в одно;
//   - пустой результат заменяется на "unnamed".
//
// Цифры намеренно не входят в разрешённый набор — поведение эталонное.
func sanitizeName(raw string) string {
	var result []rune
	for _, c := range raw {
		if unicode.IsLetter(c) || c == '_' {
			result = append(result, c)
			continue
		}
		if len(result) == 0 {
			continue
		}
		last := result[len(result)-1]
		if c == '.' && last != '.' {
			result = append(result, c)
		} else if last != '_' {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "unnamed"
	}
	return string(result)
}
