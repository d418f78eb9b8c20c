package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Locals     []*localsBlock    `hcl:"locals,block"`
	Components []*componentBlock `hcl:"component,block"`
	Calls      []*callBlock      `hcl:"call,block"`
}

// localsBlock holds named expressions that other blocks reach as local.<name>.
type localsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// componentBlock is `component "<type>" "<name>" { config = ... }`.
type componentBlock struct {
	Type      string         `hcl:"type,label"`
	Name      string         `hcl:"name,label"`
	Config    hcl.Expression `hcl:"config,optional"`
	DeclRange hcl.Range      `hcl:",def_range"`
}

// callBlock is `call "<component>" "<name>" { input = ... }`.
type callBlock struct {
	Component string         `hcl:"component,label"`
	Name      string         `hcl:"name,label"`
	Input     hcl.Expression `hcl:"input,optional"`
	DeclRange hcl.Range      `hcl:",def_range"`
}
