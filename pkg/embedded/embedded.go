// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// 未调用 Init() 或嵌入资源中不存在该文件时，回退到磁盘读取，
// 这样命令行工具和测试可以直接使用工作目录下的文件。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	assetsFS    fs.FS
	dataFS      fs.FS
	initialized bool
)

// Init 初始化资源文件系统
// 必须在 main() 开始时、任何资源加载之前调用
//
// 参数:
//   - assets: 包含 assets/ 目录的文件系统（通常为 embed.FS）
//   - data: 包含 data/ 目录的文件系统（通常为 embed.FS）
func Init(assets, data fs.FS) {
	assetsFS = assets
	dataFS = data
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// Reset 清除已注册的文件系统（仅用于测试）
func Reset() {
	assetsFS = nil
	dataFS = nil
	initialized = false
}

// normalize 标准化路径分隔符为正斜杠并移除 "./" 前缀（embed.FS 使用正斜杠）
func normalize(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}

// pick 根据路径前缀选择正确的文件系统
// 路径必须以 "assets/" 或 "data/" 开头，否则返回 nil
func pick(path string) fs.FS {
	if !initialized {
		return nil
	}
	switch {
	case strings.HasPrefix(path, "assets/"):
		return assetsFS
	case strings.HasPrefix(path, "data/"):
		return dataFS
	}
	return nil
}

// Open 打开资源文件
// 优先从嵌入资源中查找，找不到时回退到磁盘
func Open(path string) (fs.File, error) {
	path = normalize(path)
	if fsys := pick(path); fsys != nil {
		f, err := fsys.Open(path)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to open embedded resource %s: %w", path, err)
		}
	}
	f, err := os.Open(filepath.FromSlash(path))
	if err != nil {
		return nil, fmt.Errorf("resource not found: %s: %w", path, err)
	}
	return f, nil
}

// ReadFile 读取资源文件内容
// 优先从嵌入资源中查找，找不到时回退到磁盘
func ReadFile(path string) ([]byte, error) {
	path = normalize(path)
	if fsys := pick(path); fsys != nil {
		data, err := fs.ReadFile(fsys, path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read embedded resource %s: %w", path, err)
		}
	}
	data, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		return nil, fmt.Errorf("resource not found: %s: %w", path, err)
	}
	return data, nil
}

// Exists 检查资源文件是否存在（嵌入资源或磁盘）
func Exists(path string) bool {
	f, err := Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
