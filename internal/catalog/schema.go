package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/catalog.schema.json
var schemaJSON []byte

const schemaURL = "https://tripcheck.local/schema/catalog.schema.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func catalogSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			compileErr = fmt.Errorf("catalog schema load failed: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("catalog schema compile failed: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// schemaProblems validates a generic JSON value and flattens the failures into
// "location: message" lines.
func schemaProblems(doc any) ([]string, error) {
	schema, err := catalogSchema()
	if err != nil {
		return nil, err
	}
	err = schema.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}

	var problems []string
	for _, unit := range ve.BasicOutput().Errors {
		if unit.Error == "" || unit.KeywordLocation == "" {
			continue
		}
		loc := unit.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		problems = append(problems, fmt.Sprintf("%s: %s", loc, unit.Error))
	}
	if len(problems) == 0 {
		problems = append(problems, ve.Error())
	}
	return problems, nil
}
