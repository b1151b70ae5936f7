// Package api serves the embedded OpenAPI description of the HTTP surface.
package api

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIYAML []byte

var (
	jsonOnce sync.Once
	jsonSpec []byte
	jsonErr  error
)

// Spec returns the embedded OpenAPI document as YAML.
func Spec() []byte {
	return openAPIYAML
}

// SpecJSON returns the OpenAPI document converted to JSON.
func SpecJSON() ([]byte, error) {
	jsonOnce.Do(func() {
		var spec map[string]interface{}
		if jsonErr = yaml.Unmarshal(openAPIYAML, &spec); jsonErr != nil {
			return
		}
		jsonSpec, jsonErr = json.Marshal(spec)
	})
	return jsonSpec, jsonErr
}

// YAMLHandler serves the document as YAML.
func YAMLHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openAPIYAML)
	}
}

// JSONHandler serves the document as JSON.
func JSONHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec, err := SpecJSON()
		if err != nil {
			http.Error(w, "Failed to convert OpenAPI document to JSON", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(spec)
	}
}
