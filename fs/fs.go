package appfs

import "embed"

// FS holds the files shipped inside the binaries.
//go:embed migrations/*.sql
var FS embed.FS
