package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Расширения файлов документов.
var yamlExts = []string{".yaml", ".yml"}

// LoadYAML читает файл и декодирует его в out.
//
// Ошибка отсутствия файла сохраняется в цепочке (errors.Is(err, fs.ErrNotExist)).
func LoadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// LoadYAMLStrict — как LoadYAML, но неизвестные ключи считаются ошибкой.
// Пустой документ не является ошибкой.
func LoadYAMLStrict(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// normalizeKeys приводит вложенные map[any]any к map[string]any.
//
// yaml.v3 декодирует отображения с нестроковыми ключами (fees: {2024: 33})
// в map[any]any, который не кодируется в JSON. Ключи приводятся к строке
// через fmt.Sprint.
func normalizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeKeys(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeKeys(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalizeKeys(val)
		}
		return t
	default:
		return v
	}
}

// documentPath возвращает путь к документу с данным идентификатором.
// Если ни одного файла нет, возвращается путь с расширением .yaml.
func documentPath(dir, id string) string {
	for _, ext := range yamlExts {
		p := filepath.Join(dir, id+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(dir, id+yamlExts[0])
}

// validID проверяет, что идентификатор не выходит за пределы каталога.
func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`) && !strings.Contains(id, "..")
}

// isYAML проверяет расширение файла.
func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range yamlExts {
		if ext == e {
			return true
		}
	}
	return false
}
