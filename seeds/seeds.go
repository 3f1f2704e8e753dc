// Package seeds embeds the default seed data applied by cmd/migrate.
package seeds

import _ "embed"

//go:embed default.yaml
var Default []byte
