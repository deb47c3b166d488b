package path

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// RootPath 專案根目錄（以此檔案位置回推兩層）
func RootPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("無法取得 caller 位置")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}

// Exists 路徑是否存在
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Resolve 相對路徑先找目前工作目錄，找不到再接到 root/dir 之下
func Resolve(p, root string, dir ...string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if ok, _ := Exists(p); ok {
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
	}
	return filepath.Join(append(append([]string{root}, dir...), p)...)
}
