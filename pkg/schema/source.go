package schema

import (
	"path/filepath"
	"strings"
)

// Source identifies where a schema document came from so loaders and error
// messages can name it without caring how it was read.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the places schemas are read from.
type SourceKind string

const (
	SourceKindFile    SourceKind = "file"
	SourceKindFS      SourceKind = "fs"
	SourceKindPreset  SourceKind = "preset"
	SourceKindOpenAPI SourceKind = "openapi"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a path on disk.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source naming an entry inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type presetSource struct {
	name string
}

func (s presetSource) Location() string {
	return "preset:" + s.name
}

func (s presetSource) Kind() SourceKind {
	return SourceKindPreset
}

// SourceFromPreset names one of the schemas bundled with the module.
func SourceFromPreset(name string) Source {
	return presetSource{name: strings.TrimSpace(name)}
}

type openapiSource struct {
	location  string
	operation string
}

func (s openapiSource) Location() string {
	if s.operation == "" {
		return s.location
	}
	return s.location + "#" + s.operation
}

func (s openapiSource) Kind() SourceKind {
	return SourceKindOpenAPI
}

// SourceFromOpenAPI names the request body of an OpenAPI operation.
func SourceFromOpenAPI(location, operationID string) Source {
	return openapiSource{location: location, operation: operationID}
}
