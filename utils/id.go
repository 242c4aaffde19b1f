package utils

import (
	"github.com/google/uuid"
)

// GenerateID 生成实体主键
func GenerateID() string {
	return uuid.New().String()
}
