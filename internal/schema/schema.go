// Package schema generates JSON schemas for tool declarations via reflection.
package schema

import (
	"reflect"
	"strings"

	"github.com/agentacademy/go-agents/tool"
)

// Generate generates a basic JSON schema from a reflect.Type.
//
// Struct fields map to properties using their json tag names. A field is
// required unless it is a pointer or carries omitempty. The optional
// `description` and `enum` struct tags enrich the generated schema so the
// model has enough context to fill in arguments correctly.
func Generate(t reflect.Type) *tool.Schema {
	if t == nil {
		return &tool.Schema{Type: "object"}
	}
	if t.Kind() == reflect.Ptr {
		return Generate(t.Elem())
	}
	if t.Kind() != reflect.Struct {
		return generateFieldSchema(t)
	}

	schema := &tool.Schema{Type: "object"}
	properties := map[string]*tool.Schema{}
	required := make([]string, 0)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		isOmitEmpty := false
		if jsonTag != "" {
			if commaIdx := strings.Index(jsonTag, ","); commaIdx != -1 {
				if commaIdx > 0 {
					fieldName = jsonTag[:commaIdx]
				}
				isOmitEmpty = strings.Contains(jsonTag[commaIdx:], "omitempty")
			} else {
				fieldName = jsonTag
			}
		}

		fieldSchema := generateFieldSchema(field.Type)
		if desc := field.Tag.Get("description"); desc != "" {
			fieldSchema.Description = desc
		}
		if enum := field.Tag.Get("enum"); enum != "" {
			fieldSchema.Enum = strings.Split(enum, ",")
		}
		properties[fieldName] = fieldSchema

		// Pointer fields and omitempty fields are optional.
		if field.Type.Kind() != reflect.Ptr && !isOmitEmpty {
			required = append(required, fieldName)
		}
	}

	schema.Properties = properties
	if len(required) > 0 {
		schema.Required = required
	}
	return schema
}

// generateFieldSchema generates schema for a specific field type.
func generateFieldSchema(t reflect.Type) *tool.Schema {
	switch t.Kind() {
	case reflect.String:
		return &tool.Schema{Type: "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &tool.Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &tool.Schema{Type: "number"}
	case reflect.Bool:
		return &tool.Schema{Type: "boolean"}
	case reflect.Slice, reflect.Array:
		return &tool.Schema{
			Type:  "array",
			Items: generateFieldSchema(t.Elem()),
		}
	case reflect.Map:
		return &tool.Schema{
			Type:                 "object",
			AdditionalProperties: generateFieldSchema(t.Elem()),
		}
	case reflect.Ptr:
		return generateFieldSchema(t.Elem())
	case reflect.Struct:
		nested := &tool.Schema{
			Type:       "object",
			Properties: make(map[string]*tool.Schema),
		}
		required := make([]string, 0)
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			jsonTag := field.Tag.Get("json")
			if jsonTag == "-" {
				continue
			}
			fieldName := field.Name
			isOmitEmpty := false
			if jsonTag != "" {
				if commaIdx := strings.Index(jsonTag, ","); commaIdx != -1 {
					if commaIdx > 0 {
						fieldName = jsonTag[:commaIdx]
					}
					isOmitEmpty = strings.Contains(jsonTag[commaIdx:], "omitempty")
				} else {
					fieldName = jsonTag
				}
			}
			fieldSchema := generateFieldSchema(field.Type)
			if desc := field.Tag.Get("description"); desc != "" {
				fieldSchema.Description = desc
			}
			if enum := field.Tag.Get("enum"); enum != "" {
				fieldSchema.Enum = strings.Split(enum, ",")
			}
			nested.Properties[fieldName] = fieldSchema
			if field.Type.Kind() != reflect.Ptr && !isOmitEmpty {
				required = append(required, fieldName)
			}
		}
		if len(required) > 0 {
			nested.Required = required
		}
		return nested
	default:
		return &tool.Schema{Type: "object"}
	}
}
