package mcp

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mark3labs/mcp-go/mcp"
)

// renderArgs are the arguments of typejuice_render.
type renderArgs struct {
	Path string `json:"path"`
}

// extractArgs are the arguments of typejuice_extract.
type extractArgs struct {
	Path   string `json:"path"`
	Format string `json:"format"`
}

// bindArguments decodes the request arguments into target using the json
// tags. Clients sometimes send every value as a string, so input is weakly
// typed. Unknown arguments are rejected.
func bindArguments[T any](request mcp.CallToolRequest, target *T) error {
	if _, ok := request.GetRawArguments().(map[string]interface{}); !ok {
		return fmt.Errorf("invalid arguments format")
	}

	trimStrings := func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.String {
			return data, nil
		}
		return strings.TrimSpace(data.(string)), nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       trimStrings,
		Result:           target,
		TagName:          "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(request.GetArguments())
}

// resolveTypePath maps a tool path argument onto the type root. Absolute
// paths and paths escaping the root are rejected.
func resolveTypePath(typeRoot, rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("path parameter is required")
	}
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("path must be relative to the type root: %s", rel)
	}

	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path is outside the type root: %s", rel)
	}

	return filepath.Join(typeRoot, cleaned), nil
}
