package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dafibh/pocketbook/pocketbook-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

const (
	swagger2RefPrefix = "#/definitions/"
	openAPI3RefPrefix = "#/components/schemas/"
	openAPI3Version   = "3.0.3"
)

// OpenAPIDocument is the OpenAPI 3.0 rendering of the generated swagger docs
type OpenAPIDocument struct {
	OpenAPI    string          `json:"openapi"`
	Info       map[string]any  `json:"info"`
	Servers    []OpenAPIServer `json:"servers"`
	Paths      map[string]any  `json:"paths"`
	Components map[string]any  `json:"components,omitempty"`
}

// OpenAPIServer is a server entry of an OpenAPI 3.0 document
type OpenAPIServer struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// ServeOpenAPI3Spec serves the swagger 2.0 docs converted to OpenAPI 3.0
func ServeOpenAPI3Spec(c echo.Context) error {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return NewInternalError(c, "Failed to read API docs")
	}

	var swagger2 map[string]any
	if err := json.Unmarshal([]byte(raw), &swagger2); err != nil {
		return NewInternalError(c, "Failed to parse API docs")
	}

	return c.JSON(http.StatusOK, convertSwagger2(swagger2))
}

// convertSwagger2 maps a swagger 2.0 document onto OpenAPI 3.0.
// Body parameters become request bodies and response schemas move under content.
func convertSwagger2(src map[string]any) *OpenAPIDocument {
	doc := &OpenAPIDocument{
		OpenAPI:    openAPI3Version,
		Info:       asObject(src["info"]),
		Paths:      make(map[string]any),
		Components: make(map[string]any),
	}

	basePath, _ := src["basePath"].(string)
	if basePath == "" {
		basePath = "/"
	}
	doc.Servers = []OpenAPIServer{{URL: basePath}}

	for path, item := range asObject(src["paths"]) {
		operations := make(map[string]any)
		for method, op := range asObject(item) {
			operations[method] = convertOperation(asObject(op))
		}
		doc.Paths[path] = operations
	}

	if schemes := asObject(src["securityDefinitions"]); len(schemes) > 0 {
		doc.Components["securitySchemes"] = schemes
	}
	if definitions := asObject(src["definitions"]); len(definitions) > 0 {
		doc.Components["schemas"] = rewriteRefs(definitions)
	}
	return doc
}

func convertOperation(op map[string]any) map[string]any {
	out := make(map[string]any, len(op))
	mediaType := firstString(op["consumes"], echo.MIMEApplicationJSON)

	var params []any
	for _, p := range asArray(op["parameters"]) {
		param := asObject(p)
		if param["in"] == "body" {
			body := map[string]any{
				"content": map[string]any{
					mediaType: map[string]any{"schema": rewriteRefs(param["schema"])},
				},
			}
			if desc, ok := param["description"]; ok {
				body["description"] = desc
			}
			if req, ok := param["required"]; ok {
				body["required"] = req
			}
			out["requestBody"] = body
			continue
		}
		params = append(params, convertParameter(param))
	}
	if len(params) > 0 {
		out["parameters"] = params
	}

	responseType := firstString(op["produces"], echo.MIMEApplicationJSON)
	responses := make(map[string]any)
	for code, r := range asObject(op["responses"]) {
		resp := asObject(r)
		converted := map[string]any{"description": resp["description"]}
		if schema, ok := resp["schema"]; ok {
			converted["content"] = map[string]any{
				responseType: map[string]any{"schema": rewriteRefs(schema)},
			}
		}
		responses[code] = converted
	}
	out["responses"] = responses

	for key, value := range op {
		switch key {
		case "parameters", "responses", "consumes", "produces":
		default:
			out[key] = rewriteRefs(value)
		}
	}
	return out
}

// convertParameter moves the inline type fields of a path, query or header
// parameter into a schema object
func convertParameter(param map[string]any) map[string]any {
	out := make(map[string]any)
	schema := make(map[string]any)
	for key, value := range param {
		switch key {
		case "name", "in", "description", "required":
			out[key] = value
		case "type", "format", "enum", "default", "minimum", "maximum", "items":
			schema[key] = rewriteRefs(value)
		}
	}
	if len(schema) > 0 {
		out["schema"] = schema
	}
	return out
}

// rewriteRefs walks a decoded JSON value and points every $ref at components/schemas
func rewriteRefs(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for key, value := range node {
			if ref, ok := value.(string); ok && key == "$ref" {
				if strings.HasPrefix(ref, swagger2RefPrefix) {
					ref = openAPI3RefPrefix + strings.TrimPrefix(ref, swagger2RefPrefix)
				}
				out[key] = ref
				continue
			}
			out[key] = rewriteRefs(value)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, item := range node {
			out[i] = rewriteRefs(item)
		}
		return out
	default:
		return v
	}
}

func asObject(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asArray(v any) []any {
	a, _ := v.([]any)
	return a
}

func firstString(v any, fallback string) string {
	for _, item := range asArray(v) {
		if s, ok := item.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
