package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// CalculateMD5 计算字节切片的MD5哈希，返回十六进制字符串
func CalculateMD5(data []byte) string {
	hasher := md5.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// HumanFileSize 将字节数格式化为可读的文件大小
func HumanFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
