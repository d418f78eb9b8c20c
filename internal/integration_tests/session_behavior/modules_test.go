package session_behavior_test

import (
	"github.com/specialistvlad/bridgego/internal/registry"
	"github.com/specialistvlad/bridgego/modules/echo"
)

func defaultModules() []registry.Module {
	return []registry.Module{&echo.Module{}}
}
