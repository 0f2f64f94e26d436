package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/xqueue/model/types"
)

func newJob(name string) types.Job {
	return types.NewMapFunc(name, func(ctx context.Context, args map[string]interface{}) error { return nil })
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name        string
		jobs        []types.Job
		expectNames []string
		expectErr   error
		anyErr      bool
	}{
		{name: "empty", expectNames: []string{}},
		{name: "sorted names", jobs: []types.Job{newJob("b"), newJob("a"), nil}, expectNames: []string{"a", "b"}},
		{name: "duplicate", jobs: []types.Job{newJob("a"), newJob("a")}, expectErr: ErrDuplicateJob},
		{name: "blank name", jobs: []types.Job{newJob(" ")}, anyErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			registry, err := New(tc.jobs...)
			if tc.expectErr != nil || tc.anyErr {
				assert.Error(t, err)
				if tc.expectErr != nil {
					assert.ErrorIs(t, err, tc.expectErr)
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectNames, registry.Names())
			assert.Equal(t, len(tc.expectNames), registry.Len())
		})
	}
}

func TestRegistry_Lookup(t *testing.T) {
	crawl := newJob("crawl")
	registry, err := New(crawl)
	assert.NoError(t, err)

	job, ok := registry.Lookup("crawl")
	assert.True(t, ok)
	assert.Equal(t, crawl, job)

	job, ok = registry.Lookup("unknown")
	assert.False(t, ok)
	assert.Nil(t, job)
}

func TestRegistry_Validate(t *testing.T) {
	empty, _ := New()
	assert.ErrorIs(t, empty.Validate(), ErrNoJobs)
	one, _ := New(newJob("a"))
	assert.NoError(t, one.Validate())
}
