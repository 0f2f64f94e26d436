package decoder

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/xqueue/model"
)

func TestDecode(t *testing.T) {
	testCases := []struct {
		name         string
		payload      string
		expectStatus Status
		expectJob    *model.Job
		argsReplaced bool
	}{
		{
			name:         "valid payload",
			payload:      `{"spider":"foo","args":{"x":1}}`,
			expectStatus: StatusDecoded,
			expectJob:    &model.Job{ID: "foo", Args: map[string]interface{}{"x": float64(1)}},
		},
		{
			name:         "args not a mapping",
			payload:      `{"spider":"foo","args":"not-a-mapping"}`,
			expectStatus: StatusDecoded,
			expectJob:    &model.Job{ID: "foo", Args: map[string]interface{}{}},
			argsReplaced: true,
		},
		{
			name:         "args list",
			payload:      `{"spider":"foo","args":[1,2]}`,
			expectStatus: StatusDecoded,
			expectJob:    &model.Job{ID: "foo", Args: map[string]interface{}{}},
			argsReplaced: true,
		},
		{
			name:         "args absent",
			payload:      `{"spider":"foo"}`,
			expectStatus: StatusDecoded,
			expectJob:    &model.Job{ID: "foo", Args: map[string]interface{}{}},
		},
		{
			name:         "args null",
			payload:      `{"spider":"foo","args":null}`,
			expectStatus: StatusDecoded,
			expectJob:    &model.Job{ID: "foo", Args: map[string]interface{}{}},
			argsReplaced: true,
		},
		{
			name:         "job id absent",
			payload:      `{"args":{"a":"b"}}`,
			expectStatus: StatusDecoded,
			expectJob:    &model.Job{ID: "", Args: map[string]interface{}{"a": "b"}},
		},
		{
			name:         "job id not a string",
			payload:      `{"spider":42}`,
			expectStatus: StatusDecoded,
			expectJob:    &model.Job{ID: "42", Args: map[string]interface{}{}},
		},
		{
			name:         "nested args",
			payload:      `{"spider":"foo","args":{"urls":["a","b"],"opts":{"depth":2}}}`,
			expectStatus: StatusDecoded,
			expectJob: &model.Job{ID: "foo", Args: map[string]interface{}{
				"urls": []interface{}{"a", "b"},
				"opts": map[string]interface{}{"depth": float64(2)},
			}},
		},
		{name: "invalid bytes", payload: "\xff\xfe\x00", expectStatus: StatusMalformed},
		{name: "invalid utf-8 in string", payload: "{\"spider\":\"\xff\"}", expectStatus: StatusMalformed},
		{name: "invalid utf-8 in args", payload: "{\"spider\":\"foo\",\"args\":{\"q\":\"a\xc3\"}}", expectStatus: StatusMalformed},
		{name: "truncated json", payload: `{"spider":"foo"`, expectStatus: StatusMalformed},
		{name: "json list", payload: `["foo"]`, expectStatus: StatusMalformed},
		{name: "json string", payload: `"foo"`, expectStatus: StatusMalformed},
		{name: "json null", payload: `null`, expectStatus: StatusMalformed},
		{name: "empty", payload: ``, expectStatus: StatusMalformed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Decode([]byte(tc.payload))
			assert.Equal(t, tc.expectStatus, result.Status)
			if tc.expectStatus == StatusMalformed {
				assert.False(t, result.OK())
				assert.Nil(t, result.Job)
				if assert.NotNil(t, result.Err) {
					assert.Equal(t, []byte(tc.payload), result.Err.Payload)
					assert.Contains(t, result.Err.Error(), "invalid task payload")
				}
				return
			}
			assert.True(t, result.OK())
			assert.Nil(t, result.Err)
			assert.Equal(t, tc.expectJob, result.Job)
			assert.Equal(t, tc.argsReplaced, result.ArgsReplaced)
			if tc.argsReplaced {
				assert.NotEmpty(t, result.RawArgs)
			}
		})
	}
}

func TestDecode_RawArgs(t *testing.T) {
	result := Decode([]byte(`{"spider":"foo","args":null}`))
	assert.True(t, result.ArgsReplaced)
	assert.Equal(t, json.RawMessage("null"), result.RawArgs)
}

func TestDecodeError_Unwrap(t *testing.T) {
	result := Decode([]byte("{"))
	var syntaxErr *json.SyntaxError
	assert.True(t, errors.As(result.Err, &syntaxErr))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "decoded", StatusDecoded.String())
	assert.Equal(t, "malformed", StatusMalformed.String())
}
