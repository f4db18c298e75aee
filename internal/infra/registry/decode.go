// Where: internal/infra/registry/decode.go
// What: Shared profile decoding, validation and decryption.
// Why: Every backend must reject malformed data and decrypt secrets the same way.
package registry

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/poruru/envctx/internal/domain/environment"
	"github.com/poruru/envctx/internal/domain/secret"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

const schemaURL = "envctx://schema/profile.schema.json"

//go:embed schema/profile.schema.json
var profileSchema []byte

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

type profileDocument struct {
	Name string         `json:"name"`
	Data map[string]any `json:"data"`
}

// decodeProfile turns persisted YAML or JSON into a profile. key is the name the
// backend stored the document under; provider may be nil.
func decodeProfile(key string, content []byte, provider secret.Provider) (environment.Profile, error) {
	sch, err := loadSchema()
	if err != nil {
		return environment.Profile{}, fmt.Errorf("load profile schema: %w", err)
	}

	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return environment.Profile{}, &DecodeError{EnvName: key, Err: fmt.Errorf("convert yaml to json: %w", err)}
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return environment.Profile{}, &DecodeError{EnvName: key, Err: err}
	}
	if document == nil {
		document = map[string]any{}
	}
	if err := sch.Validate(document); err != nil {
		return environment.Profile{}, &DecodeError{EnvName: key, Err: err}
	}

	var doc profileDocument
	if len(bytes.TrimSpace(jsonData)) > 0 && string(bytes.TrimSpace(jsonData)) != "null" {
		if err := json.Unmarshal(jsonData, &doc); err != nil {
			return environment.Profile{}, &DecodeError{EnvName: key, Err: err}
		}
	}

	name := key
	if declared := strings.TrimSpace(doc.Name); declared != "" {
		if !strings.EqualFold(declared, key) {
			return environment.Profile{}, &DecodeError{
				EnvName: key,
				Err:     fmt.Errorf("document name %q does not match %q", declared, key),
			}
		}
		name = declared
	}

	data := doc.Data
	if data == nil {
		data = map[string]any{}
	}
	if provider != nil {
		decrypted, err := decryptValue(provider, key, "data", data)
		if err != nil {
			return environment.Profile{}, err
		}
		data = decrypted.(map[string]any)
	}
	return environment.Profile{Name: name, Data: data}, nil
}

// decryptValue walks value and replaces every enc:v1 string with its plaintext.
func decryptValue(provider secret.Provider, envName, path string, value any) (any, error) {
	switch typed := value.(type) {
	case string:
		if !secret.IsCiphertext(typed) {
			return typed, nil
		}
		plain, err := provider.Decrypt(typed)
		if err != nil {
			return nil, &DecryptError{EnvName: envName, Path: path, Err: err}
		}
		return plain, nil
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for k := range typed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(typed))
		for _, k := range keys {
			v, err := decryptValue(provider, envName, path+"."+k, typed[k])
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			v, err := decryptValue(provider, envName, fmt.Sprintf("%s[%d]", path, i), item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		return value, nil
	}
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(profileSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
