// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
	"github.com/vidmux/vidmux/constant"
	"github.com/vidmux/vidmux/key"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Vidmux + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.SourcesDefault, []string{}, "Source IDs queried when a request does not name any.\nAn empty list means every enabled source.\nType \"vidmux sources list\" to show available sources")
	register(key.SearchTimeout, 8, "Per-source search timeout in seconds.\nEach source call bounds itself; there is no shared deadline across sources")
	register(key.SearchPageSize, 20, "Maximum number of results requested from a single source per page")
	register(key.VerifyEnabled, true, "Probe each result's first play URL before returning it")
	register(key.VerifyConcurrency, 8, "Maximum number of availability probes in flight at once")
	register(key.VerifyTimeout, 5, "Per-item availability probe timeout in seconds.\nA timed-out probe marks the item unavailable, it never fails the run")
	register(key.ServerHost, "0.0.0.0", "Interface the HTTP server binds to")
	register(key.ServerPort, 8228, "Port the HTTP server listens on")
	register(key.ServerCORSAllowOrigins, []string{"*"}, "Origins allowed by the CORS layer of the HTTP server")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

// Keys returns all registered configuration keys in sorted order.
func Keys() []string {
	keys := lo.Keys(Default)
	slices.Sort(keys)
	return keys
}
