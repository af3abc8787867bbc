package filecache

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Codec serializes cached values.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Ext is the file extension appended to cache keys, e.g. ".json".
	Ext() string
}

// JSONCodec encodes values with encoding/json. Unknown fields are ignored
// when decoding.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSONCodec) Ext() string                        { return ".json" }

// YAMLCodec encodes values with gopkg.in/yaml.v3.
type YAMLCodec struct{}

func (YAMLCodec) Marshal(v any) ([]byte, error)      { return yaml.Marshal(v) }
func (YAMLCodec) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }
func (YAMLCodec) Ext() string                        { return ".yaml" }
