// Package schemas embeds the JSON Schemas for gatorgrade configuration files.
package schemas

import _ "embed"

// ChecksSchemaJSON describes the check document of gatorgrade.yml.
//
//go:embed checks.schema.json
var ChecksSchemaJSON string

// SetupSchemaJSON describes the optional setup document that precedes the
// check document.
//
//go:embed setup.schema.json
var SetupSchemaJSON string
