package structmap

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"reflect"
	"runtime"
	"sync"
	"testing"
	"time"
)

type (
	providerSource struct {
		X int
		Y string
	}

	providerTarget struct {
		X int
	}

	//gatedBuilder holds every build until released
	gatedBuilder struct {
		entered chan Flags
		release chan struct{}
	}
)

func (g *gatedBuilder) Build(source, target reflect.Type, flags Flags, excluded Exclusions) (*Converter, error) {
	g.entered <- flags
	<-g.release
	return Build(source, target, flags, excluded)
}

func TestProvider_GetOrCreate(t *testing.T) {
	provider := NewProvider()

	first, err := provider.GetOrCreate(sourceXYType, targetXYType, DefaultFlags, NewExclusions("Y"))
	require.NoError(t, err)
	second, err := provider.GetOrCreate(reflect.TypeOf(&sourceXY{}), reflect.TypeOf(&targetXY{}), DefaultFlags, nil)
	require.NoError(t, err)
	assert.Same(t, first, second, "flags and exclusions are not part of cache key")
	assert.EqualValues(t, 1, provider.Builds())
	assert.EqualValues(t, 1, provider.Len())

	rebuilt, err := provider.GetOrCreate(sourceXYType, targetXYType, DefaultFlags|Rebuild, nil)
	require.NoError(t, err)
	assert.NotSame(t, first, rebuilt)
	assert.EqualValues(t, 2, provider.Builds())
	assert.Empty(t, rebuilt.Exclusions())

	cached, ok := provider.Lookup(Pair{Source: sourceXYType, Target: targetXYType})
	require.True(t, ok)
	assert.Same(t, rebuilt, cached)

	third, err := provider.GetOrCreate(sourceXYType, targetXYType, DefaultFlags, NewExclusions("X"))
	require.NoError(t, err)
	assert.Same(t, rebuilt, third)
}

func TestProvider_FailedBuild(t *testing.T) {
	provider := NewProvider()
	source := reflect.TypeOf(providerSource{})
	target := reflect.TypeOf(providerTarget{})

	_, err := provider.GetOrCreate(source, target, DefaultFlags, nil)
	assert.ErrorIs(t, err, ErrMissingMember)
	assert.EqualValues(t, 0, provider.Len(), "failed build is not cached")

	_, err = provider.GetOrCreate(source, target, DefaultFlags, nil)
	assert.ErrorIs(t, err, ErrMissingMember, "failure is deterministic")

	lenient, err := provider.GetOrCreate(source, target, IgnoreMissing, nil)
	require.NoError(t, err)

	_, err = provider.GetOrCreate(source, target, DefaultFlags|Rebuild, nil)
	assert.ErrorIs(t, err, ErrMissingMember)

	cached, err := provider.GetOrCreate(source, target, DefaultFlags, nil)
	require.NoError(t, err)
	assert.Same(t, lenient, cached, "prior converter survives failed rebuild")
}

func TestProvider_PairsAndReset(t *testing.T) {
	provider := NewProvider()
	_, err := provider.GetOrCreate(sourceXYType, targetXYType, DefaultFlags, nil)
	require.NoError(t, err)
	_, err = provider.GetOrCreate(sourceXYType, reflect.TypeOf(targetX{}), IgnoreMissing, nil)
	require.NoError(t, err)
	_, err = provider.GetOrCreate(reflect.TypeOf(providerSource{}), reflect.TypeOf(providerTarget{}), IgnoreMissing, nil)
	require.NoError(t, err)

	var actual []string
	for _, pair := range provider.Pairs() {
		actual = append(actual, pair.String())
	}
	assert.EqualValues(t, []string{
		"structmap.providerSource->structmap.providerTarget",
		"structmap.sourceXY->structmap.targetX",
		"structmap.sourceXY->structmap.targetXY",
	}, actual)

	provider.Reset()
	assert.EqualValues(t, 0, provider.Len())
	_, ok := provider.Lookup(Pair{Source: sourceXYType, Target: targetXYType})
	assert.False(t, ok)
}

func TestProvider_WithTagNames(t *testing.T) {
	provider := NewProvider(WithTagNames("json"))
	converter, err := provider.GetOrCreate(reflect.TypeOf(taggedSource{}), reflect.TypeOf(taggedTarget{}), DefaultFlags, nil)
	require.NoError(t, err)
	assert.Len(t, converter.Bindings(), 1)
}

func TestProvider_BuilderOptions(t *testing.T) {
	var testCases = []struct {
		description string
		options     []ProviderOption
		expectErr   error
	}{
		{description: "default builder", expectErr: ErrMissingMember},
		{description: "tag names", options: []ProviderOption{WithTagNames("json")}},
		{description: "tag names accumulate", options: []ProviderOption{WithTagNames("json"), WithTagNames("yaml")}},
		{description: "custom builder", options: []ProviderOption{WithBuilder(NewBuilder("json"))}},
		{description: "custom builder after tag names", options: []ProviderOption{WithTagNames("json"), WithBuilder(NewBuilder())}, expectErr: ErrMissingMember},
		{description: "custom builder before tag names", options: []ProviderOption{WithBuilder(NewBuilder()), WithTagNames("json")}, expectErr: ErrMissingMember},
	}
	for _, testCase := range testCases {
		provider := NewProvider(testCase.options...)
		converter, err := provider.GetOrCreate(reflect.TypeOf(taggedSource{}), reflect.TypeOf(taggedTarget{}), DefaultFlags, nil)
		if testCase.expectErr != nil {
			assert.ErrorIs(t, err, testCase.expectErr, testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Len(t, converter.Bindings(), 1, testCase.description)
	}
}

func TestFlightKey(t *testing.T) {
	pair := NewPair(sourceXYType, targetXYType)
	base := flightKey(pair, DefaultFlags, NewExclusions("X", "Y"))

	assert.Equal(t, base, flightKey(pair, DefaultFlags|Rebuild, NewExclusions("Y", "X")))
	assert.NotEqual(t, base, flightKey(pair, IgnoreMissing, NewExclusions("X", "Y")))
	assert.NotEqual(t, base, flightKey(pair, DefaultFlags, NewExclusions("X")))
	assert.NotEqual(t, base, flightKey(NewPair(sourceXYType, reflect.TypeOf(targetX{})), DefaultFlags, NewExclusions("X", "Y")))
}

// TestProvider_OverlappingBuilds verifies a miss with different flags does not share a concurrent build outcome.
func TestProvider_OverlappingBuilds(t *testing.T) {
	builder := &gatedBuilder{entered: make(chan Flags, 2), release: make(chan struct{})}
	provider := NewProvider(WithBuilder(builder))
	source := reflect.TypeOf(providerSource{})
	target := reflect.TypeOf(providerTarget{})

	var strictErr, lenientErr error
	var lenient *Converter
	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, strictErr = provider.GetOrCreate(source, target, DefaultFlags, nil)
	}()
	assert.Equal(t, DefaultFlags, <-builder.entered)

	go func() {
		defer wg.Done()
		lenient, lenientErr = provider.GetOrCreate(source, target, IgnoreMissing, nil)
	}()
	select {
	case flags := <-builder.entered:
		assert.Equal(t, IgnoreMissing, flags)
	case <-time.After(2 * time.Second):
		close(builder.release)
		wg.Wait()
		t.Fatalf("IgnoreMissing call did not build with its own flags, got: %v, %v", lenient, lenientErr)
	}
	close(builder.release)
	wg.Wait()

	assert.ErrorIs(t, strictErr, ErrMissingMember)
	require.NoError(t, lenientErr)
	cached, ok := provider.Lookup(NewPair(source, target))
	require.True(t, ok)
	assert.Same(t, lenient, cached)
	assert.EqualValues(t, 1, provider.Builds())
}

// TestProvider_Concurrent verifies concurrent misses collapse into a single build and rebuilds stay visible.
func TestProvider_Concurrent(t *testing.T) {
	provider := NewProvider()
	workers := runtime.GOMAXPROCS(0) * 4
	start := make(chan struct{})
	converters := make([]*Converter, workers)
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			<-start
			converter, err := provider.GetOrCreate(sourceXYType, targetXYType, DefaultFlags, nil)
			if err != nil {
				t.Errorf("worker %d: %v", id, err)
				return
			}
			converters[id] = converter
		}(w)
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, provider.Builds())
	for i := 1; i < workers; i++ {
		assert.Same(t, converters[0], converters[i])
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				flags := DefaultFlags
				if (i+id)%10 == 0 {
					flags |= Rebuild
				}
				converter, err := provider.GetOrCreate(sourceXYType, targetXYType, flags, nil)
				if err != nil {
					t.Errorf("worker %d: %v", id, err)
					return
				}
				result, err := converter.Map(&sourceXY{X: id, Y: "y"})
				if err != nil || result.(*targetXY).X != id {
					t.Errorf("worker %d: unexpected result %v, %v", id, result, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	rebuilt, err := provider.GetOrCreate(sourceXYType, targetXYType, DefaultFlags|Rebuild, NewExclusions("Y"))
	require.NoError(t, err)
	cached, err := provider.GetOrCreate(sourceXYType, targetXYType, DefaultFlags, nil)
	require.NoError(t, err)
	assert.Same(t, rebuilt, cached)
	assert.EqualValues(t, 1, provider.Len())
}
