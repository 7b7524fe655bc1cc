// Package schema provides JSON schema validation for goldrun suite files.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	schemafs "github.com/goldrun/goldrun/schema"
)

var (
	suiteSchema *jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

// compileSchema compiles the embedded suite schema once.
func compileSchema() error {
	compileOnce.Do(func() {
		suiteData, err := schemafs.FS.ReadFile("suite.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read suite schema: %w", err)
			return
		}

		suiteDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(suiteData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal suite schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("suite.schema.json", suiteDoc); err != nil {
			compileErr = fmt.Errorf("add suite schema resource: %w", err)
			return
		}

		suiteSchema, compileErr = compiler.Compile("suite.schema.json")
	})

	return compileErr
}

// ValidateSuite validates a YAML suite document against the suite schema.
//
// The document is round-tripped through encoding/json before validation so
// the validator sees JSON-typed values regardless of YAML decoding quirks.
func ValidateSuite(data []byte) error {
	if err := compileSchema(); err != nil {
		return err
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert suite to JSON: %w", err)
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("reparse suite JSON: %w", err)
	}

	if err := suiteSchema.Validate(v); err != nil {
		return fmt.Errorf("suite validation failed: %w", err)
	}

	return nil
}
