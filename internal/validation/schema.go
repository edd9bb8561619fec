// Package validation checks gatorgrade.yml files against the embedded JSON
// Schemas before they are turned into check specs.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gatoreducator/gatorgrade/schemas"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// MaxDocuments is the number of YAML documents a configuration file may hold:
// an optional setup document followed by the check document.
const MaxDocuments = 2

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// checksSchema is the compiled JSON Schema for the check document.
var checksSchema *jsonschema.Schema

// setupSchema is the compiled JSON Schema for the setup document.
var setupSchema *jsonschema.Schema

func init() {
	checksSchema = mustCompileSchema(schemas.ChecksSchemaJSON, "checks.schema.json")
	setupSchema = mustCompileSchema(schemas.SetupSchemaJSON, "setup.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// Documents splits data into its YAML documents. Empty and null documents are
// dropped, so a file holding only comments yields no documents.
func Documents(data []byte) ([]*yaml.Node, error) {
	var docs []*yaml.Node

	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
		if isEmptyDocument(&doc) {
			continue
		}
		docs = append(docs, &doc)
	}

	return docs, nil
}

func isEmptyDocument(doc *yaml.Node) bool {
	if doc.Kind == 0 {
		return true
	}
	if doc.Kind != yaml.DocumentNode {
		return false
	}
	if len(doc.Content) == 0 {
		return true
	}
	root := doc.Content[0]
	return root.Kind == yaml.ScalarNode && root.Tag == "!!null"
}

// ValidateConfigFile validates the gatorgrade.yml file at path.
func ValidateConfigFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return ValidateConfigBytes(data), nil
}

// ValidateConfigBytes validates raw gatorgrade.yml content.
func ValidateConfigBytes(data []byte) []string {
	docs, err := Documents(data)
	if err != nil {
		return []string{err.Error()}
	}
	return ValidateDocuments(docs)
}

// Split assigns the documents their roles. With two documents the first is
// the setup document. A lone mapping is also a setup document, one whose
// check document was left empty; a check document is always a sequence.
// Either result may be nil.
func Split(docs []*yaml.Node) (setup, checks *yaml.Node) {
	switch {
	case len(docs) == 0:
		return nil, nil
	case len(docs) >= MaxDocuments:
		return docs[0], docs[len(docs)-1]
	case documentRoot(docs[0]).Kind == yaml.MappingNode:
		return docs[0], nil
	default:
		return nil, docs[0]
	}
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}

// ValidateDocuments validates parsed documents against the setup and check
// schemas, in the roles Split gives them.
func ValidateDocuments(docs []*yaml.Node) []string {
	if len(docs) > MaxDocuments {
		return []string{fmt.Sprintf("expected at most %d YAML documents, found %d", MaxDocuments, len(docs))}
	}

	setup, checks := Split(docs)

	var errs []string
	for _, part := range []struct {
		name   string
		doc    *yaml.Node
		schema *jsonschema.Schema
	}{
		{"setup", setup, setupSchema},
		{"checks", checks, checksSchema},
	} {
		if part.doc == nil {
			continue
		}

		var instance any
		if err := part.doc.Decode(&instance); err != nil {
			errs = append(errs, fmt.Sprintf("%s: YAML decode error: %v", part.name, err))
			continue
		}

		for _, e := range validateAgainstSchema(part.schema, instance) {
			errs = append(errs, part.name+" "+e)
		}
	}
	return errs
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}
