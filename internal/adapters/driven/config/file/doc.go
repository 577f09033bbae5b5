// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the kcc config directory (~/.kcc).
//
// Adapters:
//   - ConfigStore: TOML settings in config.toml, nested by key section
//   - PromptStore: user-editable prompt templates in prompts/*.txt
package file
