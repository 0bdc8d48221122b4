package interfaces

import (
	"HandSync/internal/model"
)

// DialectTokenizer 所有方言必须实现的核心接口：
// 把原始输入切分为单手单元并提取原生ID，错误仅在文件级结构问题时返回
type DialectTokenizer interface {
	Dialect() model.Dialect // 方言标识
	// SplitHands 切分为单手单元；第二个返回值为缺失原生ID而被跳过的手数
	SplitHands(content string) ([]model.RawUnit, int, error)
}
