// Package manifest describes the fixed set of runtime files copied into a
// build output directory. The set is embedded in the binary as runtime.yaml
// and validated against schema/runtime.schema.json when first loaded; it is
// not user-configurable.
package manifest
