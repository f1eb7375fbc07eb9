package movement

import (
	"sync"

	"github.com/predmove/predmove/player"
)

var ctxPool = sync.Pool{
	New: func() any {
		return &simContext{}
	},
}

func newCtx(p *player.Player, deltaTime float32) *simContext {
	ctx := ctxPool.Get().(*simContext)
	ctx.mPlayer = p
	ctx.deltaTime = deltaTime
	return ctx
}

func putCtx(ctx *simContext) {
	ctx.reset()
	ctxPool.Put(ctx)
}

func (ctx *simContext) reset() {
	ctx.mPlayer = nil
	ctx.deltaTime = 0
}
