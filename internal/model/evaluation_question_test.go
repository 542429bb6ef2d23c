package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeOptions(t *testing.T) {
	assert.Equal(t, "", EncodeOptions(nil))
	assert.Equal(t, "[]", EncodeOptions([]string{}))
	assert.Equal(t, `["a","b"]`, EncodeOptions([]string{"a", "b"}))
}

func TestDecodeOptions(t *testing.T) {
	assert.Equal(t, []string{}, DecodeOptions(1, ""))
	assert.Equal(t, []string{"a", "b"}, DecodeOptions(1, `["a","b"]`))
	assert.Equal(t, []string{}, DecodeOptions(1, "null"))
}

func TestDecodeOptionsCorruptBlob(t *testing.T) {
	assert.Equal(t, []string{}, DecodeOptions(1, "{broken"))
	assert.Equal(t, []string{}, DecodeOptions(1, `{"not":"a list"}`))
	assert.Equal(t, []string{}, DecodeOptions(1, "42"))
}

func TestKindTracksHistory(t *testing.T) {
	assert.True(t, KindAssessment.TracksHistory())
	assert.True(t, KindExam.TracksHistory())
	assert.False(t, KindAssignment.TracksHistory())
}
