// Package sfio reads and writes structured files, choosing the format from the extension.
//
// Supported formats:
//
//   - .toml: go-toml, tables as *Map
//   - .json: ordered objects, four-space indentation, UTF-8 output
//   - .yaml / .yml: yaml.v3, ordered mappings, anchors and merge keys resolved
//   - .env: godotenv (or plain KEY=VALUE lines with WithRichEnv(false))
//   - .csv: rows of string cells
//   - anything else: UTF-8 text
//
// Read and Write require the file to exist; use JTouch or os.WriteFile to create it.
// The J* helpers work on a single JSON file and can create it.
//
// Usage:
//
//	cfg, err := sfio.Read("config.yaml")
//	m := cfg.(*sfio.Map)
//	m.Set("debug", true)
//	err = sfio.Write("config.yaml", m)
//
//	// Shallow merge into a JSON object
//	err = sfio.JUpdate("state.json", map[string]any{"last_run": "2024-01-01"})
package sfio
