package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.yml
var content embed.FS

// Default loads the catalog bundled with the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(content, "content")
	if err != nil {
		return nil, fmt.Errorf("open embedded catalog: %w", err)
	}
	return LoadFS(sub)
}

// Load reads basics and advanced level files from dir.
func Load(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("read catalog dir: %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads one document per level from the root of fsys. Each level may be
// stored as <level>.yml, <level>.yaml or <level>.json.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	docs := make(map[Level]Document, len(levels))
	collector := &issueCollector{}
	for _, level := range levels {
		name, data, err := readLevelFile(fsys, level)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				collector.add(string(level), "level file not found")
				continue
			}
			return nil, err
		}
		doc, err := parseDocument(data, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if doc.Level == "" {
			doc.Level = level
		}
		docs[level] = doc
	}
	if err := collector.result(); err != nil {
		return nil, err
	}
	return fromDocuments(docs)
}

func readLevelFile(fsys fs.FS, level Level) (string, []byte, error) {
	for _, ext := range []string{".yml", ".yaml", ".json"} {
		name := string(level) + ext
		data, err := fs.ReadFile(fsys, name)
		if err == nil {
			return name, data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("read %s: %w", name, err)
		}
	}
	return "", nil, fs.ErrNotExist
}

func parseDocument(data []byte, name string) (Document, error) {
	if strings.EqualFold(path.Ext(name), ".json") {
		return parseJSONDocument(data)
	}
	return parseYAMLDocument(data)
}

func parseJSONDocument(data []byte) (Document, error) {
	var doc Document
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Document{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Document{}, fmt.Errorf("parse json: %w", err)
	}
	return doc, nil
}

func parseYAMLDocument(data []byte) (Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Document{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Document{}, fmt.Errorf("parse yaml: %w", err)
	}
	return doc, nil
}
