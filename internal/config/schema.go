package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

const schemaFileName = "config.schema.json"

// Schema returns the JSON schema of the configuration file.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{FieldNameTag: "toml"}
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/egdesk/taehwa/config.schema.json"
	schema.Title = "EG-Desk Configuration"
	schema.Description = "Configuration schema for the EG-Desk browser shell"
	return schema
}

// GenerateSchemaFile writes config.schema.json next to the config file and
// returns its path.
func (m *Manager) GenerateSchemaFile() (string, error) {
	schemaFile := filepath.Join(filepath.Dir(m.file), schemaFileName)

	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(schemaFile), dirPerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return "", fmt.Errorf("failed to write schema file: %w", err)
	}
	return schemaFile, nil
}
