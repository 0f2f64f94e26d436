package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveKeys(t *testing.T) {
	testCases := []struct {
		name      string
		namespace string
		suffix    string
		expect    KeySet
	}{
		{
			name:      "short names",
			namespace: "Q",
			suffix:    "a",
			expect:    KeySet{Backlog: "Q.a.BACKLOG", Finished: "Q.a.C.FINISHED.", Rate: "Q.a.C.RPM."},
		},
		{
			name:      "default namespace",
			namespace: "SCRAPY_X_QUEUE",
			suffix:    "default",
			expect: KeySet{
				Backlog:  "SCRAPY_X_QUEUE.default.BACKLOG",
				Finished: "SCRAPY_X_QUEUE.default.C.FINISHED.",
				Rate:     "SCRAPY_X_QUEUE.default.C.RPM.",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := DeriveKeys(tc.namespace, tc.suffix)
			assert.Equal(t, tc.expect, actual)
			assert.Equal(t, actual, DeriveKeys(tc.namespace, tc.suffix))
		})
	}
}

func TestKeyTable(t *testing.T) {
	plan := Plan{"default": 2, "fast": 4, "slow": 1}
	table := NewKeyTable("NS", plan)
	assert.Equal(t, "NS", table.Namespace())

	seen := map[string]bool{}
	for _, suffix := range plan.Suffixes() {
		keys, ok := table.Lookup(suffix)
		assert.True(t, ok)
		assert.Equal(t, DeriveKeys("NS", suffix), keys)
		for _, key := range []string{keys.Backlog, keys.Finished, keys.Rate} {
			assert.False(t, seen[key], "duplicate key %v", key)
			seen[key] = true
		}
	}

	_, ok := table.Lookup("missing")
	assert.False(t, ok)
}
