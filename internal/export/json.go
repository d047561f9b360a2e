package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

// lineItemsSchema constrains the JSON handed to the dashboard/storage layer.
// Validated before the bytes leave this package so a grammar regression is
// caught at the boundary, not downstream.
func lineItemsSchema() map[string]any {
	item := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"vendor":        map[string]any{"type": "string", "minLength": 1},
			"date":          map[string]any{"type": "string", "minLength": 1},
			"item_name":     map[string]any{"type": "string", "minLength": 1},
			"quantity":      map[string]any{"type": "number", "exclusiveMinimum": 0.0},
			"unit":          map[string]any{"type": "string", "minLength": 1},
			"unit_price":    map[string]any{"type": "number"},
			"amount":        map[string]any{"type": "number"},
			"date_inferred": map[string]any{"type": "boolean"},
		},
		"required": []string{"vendor", "date", "item_name", "quantity", "unit", "unit_price", "amount"},
	}
	return map[string]any{
		"type":  "array",
		"items": item,
	}
}

// LineItemsJSON renders line items as a JSON array validated against the
// embedded schema.
func (s *Service) LineItemsJSON(items []entity.LineItem) ([]byte, error) {
	if items == nil {
		items = []entity.LineItem{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	if err := validateAgainstSchema(lineItemsSchema(), data); err != nil {
		return nil, err
	}
	s.logger.Info("export.json.ok", "rows", len(items))
	return data, nil
}

func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
