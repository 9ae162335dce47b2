package util

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// GenerateUniqueFilename 生成唯一的文件名，去除路径分隔符等不安全字符
func GenerateUniqueFilename(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	name := strings.TrimSuffix(filepath.Base(originalFilename), ext)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ':
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf("%s_%d%s", name, time.Now().UnixNano(), ext)
}
