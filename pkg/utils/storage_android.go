//go:build android

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// androidDataRoot gdata 在 Android 上的根目录，包名子目录由系统创建
const androidDataRoot = "/data/data"

// EnsureStorageDir 在 gdata 打开之前准备好 settings 子目录。
// gdata 不会自己建子目录，首次启动时写入设置会失败。
func EnsureStorageDir() error {
	root := GetStoragePath()
	if root == "" {
		return errors.New("cannot resolve android package name")
	}

	dir := filepath.Join(root, "settings")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("%s not writable: %w", dir, err)
	}
	_ = os.Remove(probe)
	return nil
}

// GetStoragePath 返回 /data/data/<package>，无法识别包名时返回空串
func GetStoragePath() string {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	// cmdline 以 NUL 分隔，第一个字段就是包名
	name, _, _ := bytes.Cut(cmdline, []byte{0})
	name = bytes.TrimSpace(name)
	if len(name) == 0 {
		return ""
	}
	return filepath.Join(androidDataRoot, string(name))
}
