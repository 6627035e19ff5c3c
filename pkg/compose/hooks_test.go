package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/actuate/pkg/errors"
)

type theme struct{ name string }

func TestUseRef_StableAcrossEvaluations(t *testing.T) {
	var refs []*int
	inits := 0
	rt := NewRuntime(Func(func(s *Scope) Composable {
		ref := UseRef(s, func() int {
			inits++
			return 10
		})
		*ref++
		refs = append(refs, ref)
		return nil
	}))

	rt.Compose()
	rt.Compose()
	rt.Compose()

	if inits != 1 {
		t.Errorf("init ran %d times, want 1", inits)
	}
	if refs[0] != refs[2] {
		t.Error("UseRef should return the same cell on every evaluation")
	}
	if *refs[0] != 13 {
		t.Errorf("cell = %d, want 13", *refs[0])
	}
}

func TestUseRef_OutOfOrderPanics(t *testing.T) {
	first := true
	rt := NewRuntime(Func(func(s *Scope) Composable {
		if first {
			UseRef(s, func() int { return 0 })
		} else {
			UseRef(s, func() string { return "" })
		}
		return nil
	}))
	rt.Compose()
	first = false

	assert.PanicsWithValue(t,
		"compose: UseRef called out of order in compose.Func: slot 0 holds *int",
		func() { rt.Compose() })
}

func TestHookCountMismatchPanics(t *testing.T) {
	hooks := 2
	rt := NewRuntime(Func(func(s *Scope) Composable {
		for range hooks {
			UseRef(s, func() int { return 0 })
		}
		return nil
	}))
	rt.Compose()
	hooks = 1

	assert.Panics(t, func() { rt.Compose() })
}

func TestUseContext_FindsNearestAncestor(t *testing.T) {
	var got []string
	leaf := Func(func(s *Scope) Composable {
		th, err := UseContext[theme](s)
		require.NoError(t, err)
		got = append(got, th.name)
		return nil
	})
	inner := Func(func(s *Scope) Composable {
		UseProvider(s, func() theme { return theme{name: "inner"} })
		return leaf
	})
	root := Func(func(s *Scope) Composable {
		UseProvider(s, func() theme { return theme{name: "outer"} })
		return Group{leaf, inner}
	})

	NewRuntime(root).Compose()

	assert.Equal(t, []string{"outer", "inner"}, got)
}

func TestUseContext_NeverSeesOwnProvider(t *testing.T) {
	var lookupErr error
	rt := NewRuntime(Func(func(s *Scope) Composable {
		UseProvider(s, func() theme { return theme{name: "self"} })
		_, lookupErr = UseContext[theme](s)
		return nil
	}))

	rt.Compose()

	require.Error(t, lookupErr)
	assert.True(t, errors.Is(lookupErr, errors.ErrContextNotFound))
	var ctxErr *errors.ContextError
	require.True(t, errors.As(lookupErr, &ctxErr))
	assert.Equal(t, "compose.theme", ctxErr.Type)
}

func TestUseProvider_InitOnce(t *testing.T) {
	inits := 0
	rt := NewRuntime(Func(func(s *Scope) Composable {
		UseProvider(s, func() theme {
			inits++
			return theme{}
		})
		return nil
	}))

	rt.Compose()
	rt.Compose()

	assert.Equal(t, 1, inits)
}

func TestUseDrop_RunsOnceWithLatestCallback(t *testing.T) {
	pass := 0
	var dropped []int
	rt := NewRuntime(Func(func(s *Scope) Composable {
		pass++
		current := pass
		UseDrop(s, func() { dropped = append(dropped, current) })
		return nil
	}))

	rt.Compose()
	rt.Compose()
	assert.Empty(t, dropped)

	rt.Close()
	rt.Close()

	assert.Equal(t, []int{2}, dropped)
}

func TestUseDrop_ReverseOrder(t *testing.T) {
	var order []string
	rt := NewRuntime(Func(func(s *Scope) Composable {
		UseDrop(s, func() { order = append(order, "first") })
		UseDrop(s, func() { order = append(order, "second") })
		return nil
	}))

	rt.Compose()
	rt.Close()

	assert.Equal(t, []string{"second", "first"}, order)
}
