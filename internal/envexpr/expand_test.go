package envexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	var testCases = []struct {
		description string
		env         map[string]string
		input       string
		expect      string
	}{
		{description: "no expressions", input: "just a plain string", expect: "just a plain string"},
		{description: "single expression", env: map[string]string{"FOO": "bar"}, input: "value is ${env.FOO}", expect: "value is bar"},
		{description: "multiple expressions", env: map[string]string{"A": "1", "B": "2"}, input: "${env.A}-${env.B}-${env.A}", expect: "1-2-1"},
		{description: "unset variable becomes empty", input: "unset=${env.XQUEUE_NOTSET}-end", expect: "unset=-end"},
		{description: "missing closing brace", env: map[string]string{"X": "x"}, input: "start ${env.X and ${env.Y} end", expect: "start ${env.X and  end"},
		{description: "prefix only", input: "oops ${env.} done", expect: "oops  done"},
		{description: "yaml value", env: map[string]string{"REDIS_HOST": "cache"}, input: "redis:\n  host: ${env.REDIS_HOST}\n", expect: "redis:\n  host: cache\n"},
	}

	for _, testCase := range testCases {
		env := testCase.env
		actual := ExpandWith(testCase.input, func(key string) string { return env[key] })
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestExpand_Environment(t *testing.T) {
	t.Setenv("XQUEUE_TEST_NAME", "queue")
	assert.Equal(t, "name: queue", Expand("name: ${env.XQUEUE_TEST_NAME}"))
}
