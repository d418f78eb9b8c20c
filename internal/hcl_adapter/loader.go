package hcl_adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/bridgego/internal/config"
	"github.com/specialistvlad/bridgego/internal/ctxlog"
	"github.com/specialistvlad/bridgego/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL session loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths, evaluates locals first and then
// every config and input expression, and returns the validated model.
// Blocks keep the order of the files they were found in.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	roots := make([]*fileRoot, 0, len(hclFiles))
	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		roots = append(roots, &root)
	}

	var localAttrs []*hcl.Attribute
	for _, root := range roots {
		for _, block := range root.Locals {
			attrs, diags := block.Body.JustAttributes()
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid locals block: %w", diags)
			}
			localAttrs = append(localAttrs, sortedAttributes(attrs)...)
		}
	}
	locals, err := evaluateLocals(ctx, localAttrs)
	if err != nil {
		return nil, err
	}
	evalCtx := newEvalContext(locals)

	model := &config.Model{}
	for _, root := range roots {
		for _, block := range root.Components {
			c, err := l.translateComponent(ctx, block, evalCtx)
			if err != nil {
				return nil, err
			}
			model.Components = append(model.Components, c)
		}
		for _, block := range root.Calls {
			c, err := l.translateCall(ctx, block, evalCtx)
			if err != nil {
				return nil, err
			}
			model.Calls = append(model.Calls, c)
		}
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}

	logger.Debug("HCL loading complete.", "locals", len(locals), "components", len(model.Components), "calls", len(model.Calls))
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl
// files found. Files inside a directory are sorted by path.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // It's not an error if a configured path doesn't exist.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find session files in %s: %w", path, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	return allFiles, nil
}
