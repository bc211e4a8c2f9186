package config

import (
	"bufio"
	"os"
	"strings"
)

// LoadSourceList читает список источников из текстового файла.
// Пустые строки и строки начинающиеся с # пропускаются.
// Отсутствующий файл — не ошибка, возвращаем пустой список.
func LoadSourceList(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
