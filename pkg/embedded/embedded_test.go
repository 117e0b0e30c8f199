package embedded

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Reset()
	assert.False(t, IsInitialized())

	Init(fstest.MapFS{}, fstest.MapFS{})
	assert.True(t, IsInitialized())

	// 重置状态以避免影响其他测试
	Reset()
}

// TestReadFile_EmbeddedByPrefix 测试按路径前缀选择文件系统
func TestReadFile_EmbeddedByPrefix(t *testing.T) {
	t.Cleanup(Reset)
	Init(
		fstest.MapFS{"assets/meshes/a.obj": {Data: []byte("assets")}},
		fstest.MapFS{"data/locomotion.yaml": {Data: []byte("data")}},
	)

	got, err := ReadFile("./assets/meshes/a.obj")
	require.NoError(t, err)
	assert.Equal(t, "assets", string(got))

	got, err = ReadFile("data/locomotion.yaml")
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	assert.True(t, Exists("assets/meshes/a.obj"))
	assert.False(t, Exists("assets/meshes/missing.obj"))
}

// TestReadFile_FallsBackToDisk 测试未初始化或资源缺失时回退磁盘
func TestReadFile_FallsBackToDisk(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.obj")
	require.NoError(t, os.WriteFile(path, []byte("disk"), 0o644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "disk", string(got))

	f, err := Open(path)
	require.NoError(t, err)
	f.Close()

	_, err = ReadFile(filepath.Join(dir, "nope.obj"))
	assert.ErrorContains(t, err, "resource not found")
}
