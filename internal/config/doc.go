// Package config resolves the settings for one invocation of the CLI. Values
// come from the process environment (the variables shared with the GN build
// generator and the VSTOOLCHAIN_ tool settings) and an optional YAML file at
// ~/.vstoolchain/config.yaml. The resulting Config is passed explicitly to the
// locators instead of being written back into the process environment.
package config
