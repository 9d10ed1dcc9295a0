package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

type Func = func(ctx huma.Context, next func(huma.Context))

// Chains выдает цепочки мидлварей для публичных и защищенных операций.
// Каждый вызов возвращает новый срез, так что обработчики не делят общий массив.
type Chains struct {
	gate   Func
	common []Func
}

// NewChains: gate ставится первым в защищенных цепочках, common идут за ним в обоих видах.
func NewChains(gate Func, common ...Func) *Chains {
	return &Chains{gate: gate, common: common}
}

func (c *Chains) Public() huma.Middlewares {
	return append(make(huma.Middlewares, 0, len(c.common)), c.common...)
}

func (c *Chains) Protected() huma.Middlewares {
	out := make(huma.Middlewares, 0, len(c.common)+1)
	if c.gate != nil {
		out = append(out, c.gate)
	}
	return append(out, c.Public()...)
}
