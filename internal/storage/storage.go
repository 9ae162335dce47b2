package storage

import (
	"fmt"
	"mime/multipart"

	"github.com/springboardmentor4545/Brag-Board-Team6/config"
)

// 支持的存储驱动
const (
	DriverLocal = "local"
	DriverS3    = "s3"
	DriverGCS   = "gcs"
)

// FileStorage 统一的文件存储接口
type FileStorage interface {
	// UploadFile 保存文件并返回可访问的路径或URL
	UploadFile(file *multipart.FileHeader, path string) (string, error)
	// Driver 返回存储驱动名称
	Driver() string
}

// New 根据配置选择存储后端
func New(cfg config.Config) (FileStorage, error) {
	switch cfg.StorageDriver {
	case DriverLocal:
		return NewLocalStorage(cfg.LocalStoragePath)
	case DriverS3:
		return NewS3Client(cfg.S3Region, cfg.S3Bucket)
	case DriverGCS:
		return NewGCSClient(cfg.GCSBucketName, cfg.GCSCredentialsFile)
	default:
		return nil, fmt.Errorf("未知的存储驱动: %s", cfg.StorageDriver)
	}
}
