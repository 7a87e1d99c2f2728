package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Request body schemas, keyed by file name without extension.
const (
	schemaScrape         = "scrape-request"
	schemaScrapeComplete = "scrape-complete-request"
)

type schemaSet map[string]*jsonschema.Schema

func loadSchemas() (schemaSet, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	set := schemaSet{}
	err := fs.WalkDir(schemaFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".json") {
			return err
		}
		raw, err := schemaFS.ReadFile(path)
		if err != nil {
			return err
		}
		if err := compiler.AddResource(path, bytes.NewReader(raw)); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		schema, err := compiler.Compile(path)
		if err != nil {
			return fmt.Errorf("failed to compile schema %s: %w", path, err)
		}
		set[strings.TrimSuffix(strings.TrimPrefix(path, "schemas/"), ".json")] = schema
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// validate checks body against the named schema.
func (s schemaSet) validate(name string, body []byte) error {
	schema, ok := s[name]
	if !ok {
		return fmt.Errorf("schema %q not found", name)
	}
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("request body is not valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}
