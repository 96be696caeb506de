package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":    "9090",
		"BAD_INT": "nine",
		"WATCH":   "true",
		"EMPTY":   "",
		"ORIGINS": "https://a.example, ,https://b.example",
	}

	assert.Equal(t, 9090, GetInt(cfg, "PORT", 8080))
	assert.Equal(t, 8080, GetInt(cfg, "BAD_INT", 8080))
	assert.Equal(t, 8080, GetInt(cfg, "MISSING", 8080))

	assert.True(t, GetBool(cfg, "WATCH", false))
	assert.False(t, GetBool(cfg, "MISSING", false))

	assert.Equal(t, "fallback", GetString(cfg, "EMPTY", "fallback"))
	assert.Equal(t, "9090", GetString(cfg, "PORT", ""))

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetList(cfg, "ORIGINS", nil))
	assert.Equal(t, []string{"*"}, GetList(cfg, "MISSING", []string{"*"}))

	assert.Equal(t, "x", GetString(nil, "PORT", "x"))
}

func TestSplit(t *testing.T) {
	key, value := split("A=b=c")
	assert.Equal(t, "A", key)
	assert.Equal(t, "b=c", value)

	key, value = split("ONLY")
	assert.Equal(t, "ONLY", key)
	assert.Equal(t, "", value)
}
