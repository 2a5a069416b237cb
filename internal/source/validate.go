package source

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed measurements.schema.json
var measurementsSchema []byte

const measurementsSchemaURL = "schema://tumorscore/measurements.json"

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// getCompiledSchema compiles the embedded measurement schema once.
func getCompiledSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		var def any
		if err := json.NewDecoder(bytes.NewReader(measurementsSchema)).Decode(&def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(measurementsSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(measurementsSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateDocument checks a decoded JSON value against the measurement schema.
func validateDocument(doc any) error {
	compiled, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile measurement schema: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("%w: schema validation failed: %v", ErrInvalidMeasurement, err)
	}
	return nil
}
