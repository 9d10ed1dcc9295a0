package middleware

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
)

func TestChains(t *testing.T) {
	var calls []string
	mw := func(name string) Func {
		return func(ctx huma.Context, next func(huma.Context)) {
			calls = append(calls, name)
			next(ctx)
		}
	}
	run := func(chain huma.Middlewares) []string {
		calls = nil
		for _, m := range chain {
			m(nil, func(huma.Context) {})
		}
		return calls
	}

	c := NewChains(mw("auth"), mw("logger"))

	tests := []struct {
		name  string
		chain huma.Middlewares
		want  []string
	}{
		{name: "public skips the gate", chain: c.Public(), want: []string{"logger"}},
		{name: "protected starts with the gate", chain: c.Protected(), want: []string{"auth", "logger"}},
		{name: "no gate", chain: NewChains(nil, mw("logger")).Protected(), want: []string{"logger"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(tt.chain))
		})
	}
}

func TestChains_FreshSlices(t *testing.T) {
	c := NewChains(nil, func(ctx huma.Context, next func(huma.Context)) { next(ctx) })

	first := c.Public()
	first[0] = nil

	assert.NotNil(t, c.Public()[0])
}
