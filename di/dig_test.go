package di_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/utmo/cmdletdi/di"
)

func newDigContainer(t *testing.T, log *Logger, cache Store) *dig.Container {
	t.Helper()

	c := dig.New()
	require.NoError(t, c.Provide(func() *Logger { return log }))
	require.NoError(t, c.Provide(func() Store { return cache }, dig.Name("cache")))
	return c
}

func TestDigResolver_ResolvesByTypeAndName(t *testing.T) {
	t.Parallel()

	log := &Logger{Level: "debug"}
	cache := &MemStore{}
	r := di.NewDigResolver(newDigContainer(t, log, cache))

	got, err := r.Resolve(di.RequestFor[*Logger]())
	require.NoError(t, err)
	assert.Same(t, log, got)

	got, err = r.Resolve(di.NamedRequestFor[Store]("cache"))
	require.NoError(t, err)
	assert.Same(t, cache, got)
}

func TestDigResolver_DrivesPlan(t *testing.T) {
	t.Parallel()

	log := &Logger{}
	cache := &MemStore{}
	r := di.NewDigResolver(newDigContainer(t, log, cache))

	cmd := &Command{}
	require.NoError(t, commandPlan().MustBuild().Apply(r, cmd))
	assert.Same(t, log, cmd.Log)
	assert.Same(t, cache, cmd.Store)
}

func TestDigResolver_MissingIsResolutionError(t *testing.T) {
	t.Parallel()

	r := di.NewDigResolver(dig.New())

	_, err := r.Resolve(di.RequestFor[*Logger]())
	require.Error(t, err)

	_, err = r.Resolve(di.NamedRequestFor[Store]("cache"))
	require.Error(t, err)

	cmd := &Command{}
	err = commandPlan().MustBuild().Apply(r, cmd)
	require.True(t, errors.Is(err, di.ErrResolution))
	assert.Nil(t, cmd.Log)
}

func TestDigResolver_Guards(t *testing.T) {
	t.Parallel()

	var nilResolver *di.DigResolver
	_, err := nilResolver.Resolve(di.RequestFor[*Logger]())
	assert.ErrorIs(t, err, di.ErrNilResolver)

	_, err = di.NewDigResolver(dig.New()).Resolve(di.Request{})
	var nf di.NotFoundError
	assert.True(t, errors.As(err, &nf))

	c := dig.New()
	assert.Same(t, c, di.NewDigResolver(c).Container())
}
