// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/funny233-github/mcpack/internal/adapters/cas"
	_ "github.com/funny233-github/mcpack/internal/adapters/fabric"
	_ "github.com/funny233-github/mcpack/internal/adapters/httpfetch"
	_ "github.com/funny233-github/mcpack/internal/adapters/lockfile"
	_ "github.com/funny233-github/mcpack/internal/adapters/logger"
	_ "github.com/funny233-github/mcpack/internal/adapters/modrinth"
	_ "github.com/funny233-github/mcpack/internal/adapters/mojang"
	_ "github.com/funny233-github/mcpack/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/funny233-github/mcpack/internal/app"
	_ "github.com/funny233-github/mcpack/internal/engine/download"
	_ "github.com/funny233-github/mcpack/internal/engine/materialize"
	_ "github.com/funny233-github/mcpack/internal/engine/reconcile"
	_ "github.com/funny233-github/mcpack/internal/engine/resolve"
)
