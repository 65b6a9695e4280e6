package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroLoaderStartsLoading(t *testing.T) {
	t.Parallel()

	var l Loader[string]
	assert.Equal(t, StatusLoading, l.State().Status)
}

func TestApplyDeliversLatestGeneration(t *testing.T) {
	t.Parallel()

	var l Loader[string]
	apply := l.Begin()

	require.True(t, apply("value"))
	st := l.State()
	assert.Equal(t, StatusReady, st.Status)
	assert.Equal(t, "value", st.Value)
}

func TestSupersededGenerationIsDropped(t *testing.T) {
	t.Parallel()

	var l Loader[string]
	first := l.Begin()
	second := l.Begin()

	assert.False(t, first("stale"), "an older generation must not apply")
	assert.Equal(t, StatusLoading, l.State().Status)

	require.True(t, second("fresh"))
	assert.Equal(t, "fresh", l.State().Value)

	assert.False(t, first("stale again"), "the old generation stays dead")
	assert.Equal(t, "fresh", l.State().Value)
}

func TestBeginResetsToLoading(t *testing.T) {
	t.Parallel()

	var l Loader[int]
	apply := l.Begin()
	require.True(t, apply(1))
	require.Equal(t, StatusReady, l.State().Status)

	l.Begin()
	assert.Equal(t, StatusLoading, l.State().Status, "a new fetch shows loading again")
}

func TestInvalidateKillsInFlightFetch(t *testing.T) {
	t.Parallel()

	var l Loader[int]
	apply := l.Begin()
	l.Invalidate()

	assert.False(t, apply(1), "invalidate drops the in-flight generation")
	assert.Equal(t, StatusLoading, l.State().Status)
}

func TestVersionAdvancesPerGeneration(t *testing.T) {
	t.Parallel()

	var l Loader[int]
	l.Begin()
	v1 := l.Version()
	l.Begin()
	assert.Greater(t, l.Version(), v1)
}
