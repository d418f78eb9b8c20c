package app

import (
	"io"

	"github.com/specialistvlad/bridgego/internal/registry"
	"github.com/specialistvlad/bridgego/modules/echo"
	"github.com/specialistvlad/bridgego/modules/env_vars"
	"github.com/specialistvlad/bridgego/modules/print"
)

// coreModules is the definitive list of all modules that are compiled into
// the binary. print writes to the app's output.
func coreModules(outW io.Writer) []registry.Module {
	return []registry.Module{
		&echo.Module{},
		&env_vars.Module{},
		&print.Module{Out: outW},
	}
}
