// Package tools defines the tool catalog an agent advertises to the reasoning
// service and the dispatch from a requested tool name to its handler.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"go-campaigner/pkg/logger"
)

// Schema is a JSON-schema shaped parameter description.
type Schema map[string]any

// Object builds an object schema from its properties.
func Object(properties map[string]Schema, required ...string) Schema {
	props := make(map[string]any, len(properties))
	for k, v := range properties {
		props[k] = v
	}
	s := Schema{"type": "object", "properties": props}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func String(description string) Schema {
	s := Schema{"type": "string"}
	if description != "" {
		s["description"] = description
	}
	return s
}

func StringArray(description string) Schema {
	s := Schema{"type": "array", "items": Schema{"type": "string"}}
	if description != "" {
		s["description"] = description
	}
	return s
}

type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`
}

// Handler runs a tool on its decoded argument object. Handlers report invalid
// input inside the returned value instead of failing.
type Handler func(ctx context.Context, args map[string]any) any

type Tool struct {
	Definition
	Handler Handler
}

// ErrorResult is the payload returned for calls that could not be served.
type ErrorResult struct {
	Error string `json:"error"`
}

// Func adapts a typed tool function. The argument object is decoded into T;
// a shape mismatch is answered with an ErrorResult.
func Func[T any](fn func(ctx context.Context, args T) any) Handler {
	return func(ctx context.Context, raw map[string]any) any {
		var args T
		b, err := json.Marshal(raw)
		if err == nil {
			err = json.Unmarshal(b, &args)
		}
		if err != nil {
			return ErrorResult{Error: fmt.Sprintf("invalid arguments: %v", err)}
		}
		return fn(ctx, args)
	}
}

// Registry maps tool names to handlers for one agent.
type Registry struct {
	catalog  []Definition
	handlers map[string]Handler
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{
		catalog:  make([]Definition, 0, len(tools)),
		handlers: make(map[string]Handler, len(tools)),
	}
	for _, t := range tools {
		r.catalog = append(r.catalog, t.Definition)
		r.handlers[t.Name] = t.Handler
	}
	return r
}

// Catalog returns the tool definitions in registration order.
func (r *Registry) Catalog() []Definition {
	out := make([]Definition, len(r.catalog))
	copy(out, r.catalog)
	return out
}

func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Dispatch runs the named tool. Unknown tools and panicking handlers are
// answered with an ErrorResult so the reasoning service can adapt.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (result any) {
	h, ok := r.handlers[name]
	if !ok {
		log.Warn().Str(logger.ToolField, name).Msg("unknown tool requested")
		return ErrorResult{Error: "unknown tool: " + name}
	}
	defer func() {
		if p := recover(); p != nil {
			log.Error().Str(logger.ToolField, name).Msgf("tool panicked: %v", p)
			result = ErrorResult{Error: fmt.Sprintf("tool %s failed: %v", name, p)}
		}
	}()
	return h(ctx, args)
}
