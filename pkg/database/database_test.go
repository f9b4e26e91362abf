package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateEnabled(t *testing.T) {
	assert.True(t, MigrateEnabled("debug", false), "debug 模式默认迁移")
	assert.True(t, MigrateEnabled("", false), "未设置模式按 debug 处理")
	assert.False(t, MigrateEnabled("release", false), "release 模式默认跳过迁移")
	assert.True(t, MigrateEnabled("release", true), "-migrate 标志强制迁移")
}
