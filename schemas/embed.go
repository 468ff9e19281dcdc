// Package schemas embeds the JSON Schemas used to check structured service responses
// and the optional config file.
package schemas

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// Schema file names
const (
	Keywords    = "keywords.schema.json"
	ImageTopics = "image_topics.schema.json"
	Config      = "config.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw content of an embedded schema.
func Read(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %q not found: %w", name, err)
	}
	return string(data), nil
}

// Names lists the embedded schema files in sorted order.
func Names() []string {
	names, _ := fs.Glob(files, "*.schema.json")
	sort.Strings(names)
	return names
}
