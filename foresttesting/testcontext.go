// Package foresttesting provides shared fixtures for forest tests.
package foresttesting

import (
	"context"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-meshforest/forest"
	"github.com/forestrie/go-meshforest/scheme"
)

type TestContext struct {
	Log logger.Logger
	T   *testing.T
}

type TestConfig struct {
	TestLabelPrefix string
	// LogLevel defaults to NOOP so tests are quiet.
	LogLevel string
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	level := cfg.LogLevel
	if level == "" {
		level = "NOOP"
	}
	logger.New(level)
	return TestContext{
		T:   t,
		Log: logger.Sugar.WithServiceName(cfg.TestLabelPrefix),
	}
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// Uniform returns a committed forest with one tree per shape at level.
func (c *TestContext) Uniform(level int, shapes []scheme.Shape, opts ...forest.Option) *forest.Forest {
	f, err := forest.NewUniform(c.Log, shapes, level, opts...)
	require.NoError(c.T, err)
	return f
}

// Adapt commits a new forest adapted from from.
func (c *TestContext) Adapt(from *forest.Forest, fn forest.AdaptFunc, recursive bool, opts ...forest.Option) *forest.Forest {
	f := forest.New(c.Log, opts...)
	require.NoError(c.T, f.SetAdapt(from, fn, recursive))
	require.NoError(c.T, f.Commit(context.Background()))
	return f
}

// Snapshot returns the deterministic CBOR snapshot of f.
func (c *TestContext) Snapshot(f *forest.Forest) []byte {
	codec, err := forest.NewSnapshotCodec()
	require.NoError(c.T, err)
	b, err := forest.EncodeSnapshot(codec, f)
	require.NoError(c.T, err)
	return b
}

// Elements returns the elements of tree i of f.
func (c *TestContext) Elements(f *forest.Forest, i int) []scheme.Element {
	es, err := f.TreeElements(i)
	require.NoError(c.T, err)
	return es
}

// RequireSorted fails the test unless every tree of f is in strict linear
// order.
func (c *TestContext) RequireSorted(f *forest.Forest) {
	for i := 0; i < f.NumTrees(); i++ {
		t, err := f.Tree(i)
		require.NoError(c.T, err)
		require.True(c.T, t.IsSorted(), "tree %d is not in linear order", i)
	}
}
