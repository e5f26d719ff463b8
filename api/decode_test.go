package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractOneProbesKnownShapes(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		entity string
		want   string
	}{
		{
			name:   "bare object with id",
			body:   `{"id":7,"kind":"кот"}`,
			entity: "pet",
			want:   `{"id":7,"kind":"кот"}`,
		},
		{
			name:   "data.entity[0]",
			body:   `{"data":{"user":[{"id":1,"name":"Анна"}]}}`,
			entity: "user",
			want:   `{"id":1,"name":"Анна"}`,
		},
		{
			name:   "data.entity object",
			body:   `{"data":{"pet":{"id":3}}}`,
			entity: "pet",
			want:   `{"id":3}`,
		},
		{
			name:   "data itself",
			body:   `{"data":{"name":"Анна","phone":"+79211234567"}}`,
			entity: "user",
			want:   `{"name":"Анна","phone":"+79211234567"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := extractOne([]byte(tt.body), tt.entity)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestExtractOneNoPayload(t *testing.T) {
	for _, body := range []string{"", "null", `{"message":"ok"}`, `{"data":{"user":[]}}`, "not json"} {
		_, err := extractOne([]byte(body), "user")
		assert.ErrorIs(t, err, ErrNoPayload, "body %q", body)
	}
}

func TestExtractManyProbesKnownShapes(t *testing.T) {
	raw, err := extractMany([]byte(`{"data":{"orders":[{"id":1}]}}`), "orders")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(raw))

	raw, err = extractMany([]byte(`{"data":[{"id":2}]}`), "orders")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":2}]`, string(raw))

	raw, err = extractMany([]byte(`[{"id":3}]`), "orders")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":3}]`, string(raw))

	_, err = extractMany([]byte(`{"message":"nope"}`), "orders")
	assert.ErrorIs(t, err, ErrNoPayload)
}

func TestExtractField(t *testing.T) {
	token, err := extractField([]byte(`{"token":"t1"}`), "token")
	require.NoError(t, err)
	assert.Equal(t, "t1", token)

	token, err = extractField([]byte(`{"data":{"token":"t2"}}`), "token")
	require.NoError(t, err)
	assert.Equal(t, "t2", token)

	_, err = extractField([]byte(`{"data":{}}`), "token")
	assert.ErrorIs(t, err, ErrNoPayload)
}
