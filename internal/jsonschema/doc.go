// Package jsonschema generates the JSON Schema fragments that describe tool
// parameters to a language model.
//
// The main entry point is [GenerateJSONSchema], which derives a [Schema] from
// a Go type by reflection, honouring json and jsonschema struct tags.
package jsonschema
