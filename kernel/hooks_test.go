package kernel_test

import (
	"github.com/nervasim/nerva/hooking"
	"github.com/nervasim/nerva/kernel"
)

// drawCollector keeps the draw records a kernel raises.
type drawCollector struct {
	records []kernel.DrawRecord
}

func (c *drawCollector) Func(ctx hooking.HookCtx) {
	if ctx.Pos != kernel.HookPosDraw {
		return
	}

	c.records = append(c.records, ctx.Item.(kernel.DrawRecord))
}

var _ hooking.Hook = (*drawCollector)(nil)
