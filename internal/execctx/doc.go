// Package execctx provides dedicated execution contexts for component handles.
//
// Each Context owns one goroutine that runs submitted work serially. Callers
// block in Run until their work finishes, which lets synchronous code drive
// components that expect a stable, private executor. A Factory bounds how many
// contexts may be alive at once.
package execctx
