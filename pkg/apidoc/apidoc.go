// Package apidoc loads the OpenAPI description of the render endpoint and
// derives the studio form fields from its query parameters.
package apidoc

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var embeddedDocument []byte

// DocumentPath is the path the render operation is declared under in the
// embedded document.
const DocumentPath = "/render"

// OperationID identifies the render operation.
const OperationID = "renderImage"

// FieldKind selects the form control for a field.
type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldSelect FieldKind = "select"
)

// Field is one studio form control derived from a query parameter.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Help        string    `json:"help,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Default     string    `json:"default,omitempty"`
	Kind        FieldKind `json:"kind"`
	Options     []string  `json:"options,omitempty"`
	// Ignored marks parameters the renderer accepts but does not use.
	Ignored bool `json:"ignored,omitempty"`
}

// Document is a validated OpenAPI description plus its derived fields.
type Document struct {
	spec   *openapi3.T
	raw    []byte
	fields []Field
}

// Load parses and validates the embedded document, mounting the render
// operation at renderPath (DocumentPath when empty).
func Load(ctx context.Context, renderPath string) (*Document, error) {
	return LoadFromData(ctx, embeddedDocument, renderPath)
}

// LoadFromData is Load for an arbitrary document.
func LoadFromData(ctx context.Context, data []byte, renderPath string) (*Document, error) {
	if len(data) == 0 {
		return nil, errors.New("apidoc: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("apidoc: load document: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("apidoc: validate: %w", err)
	}
	if spec.Paths == nil {
		return nil, errors.New("apidoc: document does not contain any paths")
	}

	item := spec.Paths.Find(DocumentPath)
	if item == nil || item.Get == nil || item.Get.OperationID != OperationID {
		return nil, fmt.Errorf("apidoc: operation %q not found at GET %s", OperationID, DocumentPath)
	}

	renderPath = strings.TrimSpace(renderPath)
	if renderPath != "" && renderPath != DocumentPath {
		spec.Paths.Delete(DocumentPath)
		spec.Paths.Set(renderPath, item)
	}

	raw, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("apidoc: encode document: %w", err)
	}

	return &Document{
		spec:   spec,
		raw:    raw,
		fields: fieldsFrom(item.Get.Parameters),
	}, nil
}

// Spec exposes the parsed document.
func (d *Document) Spec() *openapi3.T { return d.spec }

// Fields returns a copy of the derived form fields in document order.
func (d *Document) Fields() []Field {
	out := make([]Field, len(d.fields))
	for i, f := range d.fields {
		f.Options = append([]string(nil), f.Options...)
		out[i] = f
	}
	return out
}

// Handler serves the document as JSON.
func (d *Document) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(d.raw)
	})
}

func fieldsFrom(params openapi3.Parameters) []Field {
	fields := make([]Field, 0, len(params))
	for _, ref := range params {
		if ref == nil || ref.Value == nil || ref.Value.In != openapi3.ParameterInQuery {
			continue
		}
		p := ref.Value
		field := Field{
			Name:        p.Name,
			Label:       extensionString(p.Extensions, "x-label"),
			Help:        strings.TrimSpace(p.Description),
			Placeholder: extensionString(p.Extensions, "x-placeholder"),
			Kind:        FieldText,
			Ignored:     extensionBool(p.Extensions, "x-ignored"),
		}
		if field.Label == "" {
			field.Label = p.Name
		}
		if p.Schema != nil && p.Schema.Value != nil {
			schema := p.Schema.Value
			if schema.Default != nil {
				field.Default = fmt.Sprint(schema.Default)
			}
			if len(schema.Enum) > 0 {
				field.Kind = FieldSelect
				for _, option := range schema.Enum {
					field.Options = append(field.Options, fmt.Sprint(option))
				}
			}
		}
		fields = append(fields, field)
	}
	return fields
}

func extensionString(ext map[string]any, key string) string {
	if value, ok := ext[key]; ok {
		if s, ok := value.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func extensionBool(ext map[string]any, key string) bool {
	if value, ok := ext[key]; ok {
		b, ok := value.(bool)
		return ok && b
	}
	return false
}
