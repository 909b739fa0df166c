package service

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// 内容文档只允许 JSON 值树；body 必须是 Markdown 字符串，items 必须是数组。
var documentSchema = mustCompileSchema(map[string]interface{}{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"definitions": map[string]interface{}{
		"node": map[string]interface{}{
			"anyOf": []interface{}{
				map[string]interface{}{"type": "string", "maxLength": 20000},
				map[string]interface{}{"type": "number"},
				map[string]interface{}{"type": "boolean"},
				map[string]interface{}{"type": "null"},
				map[string]interface{}{
					"type":  "array",
					"items": map[string]interface{}{"$ref": "#/definitions/node"},
				},
				map[string]interface{}{
					"type":                 "object",
					"additionalProperties": map[string]interface{}{"$ref": "#/definitions/node"},
				},
			},
		},
	},
	"type": "object",
	"properties": map[string]interface{}{
		"body":  map[string]interface{}{"type": "string"},
		"items": map[string]interface{}{"type": "array"},
	},
	"additionalProperties": map[string]interface{}{"$ref": "#/definitions/node"},
})

func mustCompileSchema(schema map[string]interface{}) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("compile document schema: %v", err))
	}
	return compiled
}

// validateDocument 校验 customContent / section content，空文档视为合法。
func validateDocument(field string, doc map[string]interface{}) error {
	if len(doc) == 0 {
		return nil
	}

	result, err := documentSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidContent, field, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s: %s", ErrInvalidContent, field, strings.Join(errs, "; "))
	}
	return nil
}
