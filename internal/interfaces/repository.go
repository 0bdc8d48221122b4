package interfaces

import (
	"context"

	"HandSync/internal/model"
)

// ReplaceStats 单手子表重建的行数统计
type ReplaceStats struct {
	Players int
	Actions int
	Results int
}

// HandRepository 原始手牌存储接口：身份、去重、幂等写入
type HandRepository interface {
	// EnsureUser 按用户名取用户ID，不存在则创建
	EnsureUser(ctx context.Context, username string) (uint64, error)
	// GetUser 按用户名取用户ID，不存在返回错误
	GetUser(ctx context.Context, username string) (uint64, error)
	// SaveRawHands 批量 UPSERT 原始手牌，返回 (新增数, 重复数)
	SaveRawHands(ctx context.Context, hands []*model.RawHand) (int, int, error)
	// FetchUnparsed 取未解析手牌（无 hand_players 关联），按ID升序、定量取批
	FetchUnparsed(ctx context.Context, userID uint64, limit int) ([]*model.RawHand, error)
	// CountUnparsed 统计未解析手牌数
	CountUnparsed(ctx context.Context, userID uint64) (int64, error)
}

// ParsedRepository 规范子表存储接口
type ParsedRepository interface {
	// ReplaceParsedHand 单事务重建一手的全部子表行（先删后插），失败整体回滚
	ReplaceParsedHand(ctx context.Context, userID, handID uint64, parsed *model.ParsedHand) (*ReplaceStats, error)
}
