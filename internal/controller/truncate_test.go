package controller

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"agentpage_backend/internal/model"
)

func TestTruncateCountsCharactersNotBytes(t *testing.T) {
	// 120 Arabic characters take 240 bytes; all of them fit the bio limit
	arabic := ""
	for i := 0; i < model.MaxBioLength; i++ {
		arabic += "م"
	}
	out := truncate(arabic, model.MaxBioLength)
	assert.Equal(t, arabic, out)
	assert.Equal(t, model.MaxBioLength, utf8.RuneCountInString(out))
}

func TestTruncateNeverSplitsRunes(t *testing.T) {
	long := ""
	for i := 0; i < 150; i++ {
		long += "م"
	}
	out := truncate(long, model.MaxBioLength)
	assert.Equal(t, model.MaxBioLength, utf8.RuneCountInString(out))
	assert.True(t, utf8.ValidString(out))
}

func TestTruncateASCII(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcde", truncate("abcdefg", 5))
	assert.Equal(t, "", truncate("", 5))
}
