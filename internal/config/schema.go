package config

import (
	"github.com/invopop/jsonschema"
)

// Schema describes the YAML file, using the yaml tags for property names.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:               "yaml",
		DoNotReference:             true,
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}
	s := r.Reflect(&Config{})
	s.Title = "Order history generator run configuration"
	return s
}
