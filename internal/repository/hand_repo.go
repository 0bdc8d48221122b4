package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"HandSync/internal/interfaces"
	"HandSync/internal/model"
)

type handRepository struct {
	db *gorm.DB
}

// NewHandRepository 创建原始手牌仓储实例
func NewHandRepository(db *gorm.DB) interfaces.HandRepository {
	return &handRepository{db: db}
}

// EnsureUser 按用户名取用户ID，不存在则创建。
// 并发导入时由唯一约束仲裁：插入冲突落为无害重复，随后读回即可。
func (r *handRepository) EnsureUser(ctx context.Context, username string) (uint64, error) {
	user := &model.User{Username: username, PasswordHash: "x"}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(user).Error; err != nil {
		return 0, fmt.Errorf("创建用户失败: %w", err)
	}
	if user.ID != 0 {
		return user.ID, nil
	}
	return r.GetUser(ctx, username)
}

// GetUser 按用户名取用户ID
func (r *handRepository) GetUser(ctx context.Context, username string) (uint64, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("用户 %q 不存在", username)
		}
		return 0, fmt.Errorf("查询用户失败: %w", err)
	}
	return user.ID, nil
}

// dedupeByGameID 合并同批内的重复身份：同一 (user_id, game_id) 出现在
// 单条多行 upsert 里会被 Postgres 以基数冲突拒绝（SQLSTATE 21000，
// "cannot affect row a second time"），必须先在批内收敛。
// 保留末次出现（与逐行 upsert 的最终状态一致），返回收敛掉的行数。
func dedupeByGameID(hands []*model.RawHand) ([]*model.RawHand, int) {
	seen := make(map[string]int, len(hands))
	out := make([]*model.RawHand, 0, len(hands))
	collapsed := 0
	for _, h := range hands {
		if i, ok := seen[h.GameID]; ok {
			out[i] = h
			collapsed++
			continue
		}
		seen[h.GameID] = len(out)
		out = append(out, h)
	}
	return out, collapsed
}

// SaveRawHands 批量 UPSERT 原始手牌。身份键为 (user_id, game_id)；
// 已存在的身份按重复计数，其 raw_text/raw_text_hash/source_file 被覆盖
// （哈希列保留覆盖痕迹供审计）。同批内的重复身份先收敛再写，
// 收敛掉的行同样计为重复。返回 (新增数, 重复数)。
func (r *handRepository) SaveRawHands(ctx context.Context, hands []*model.RawHand) (int, int, error) {
	if len(hands) == 0 {
		return 0, 0, nil
	}
	hands, collapsed := dedupeByGameID(hands)

	userID := hands[0].UserID
	gameIDs := make([]string, 0, len(hands))
	for _, h := range hands {
		gameIDs = append(gameIDs, h.GameID)
	}

	var existingList []string
	if err := r.db.WithContext(ctx).Model(&model.RawHand{}).
		Where("user_id = ? AND game_id IN ?", userID, gameIDs).
		Pluck("game_id", &existingList).Error; err != nil {
		return 0, 0, fmt.Errorf("查询已有手牌失败: %w", err)
	}
	existing := make(map[string]bool, len(existingList))
	for _, id := range existingList {
		existing[id] = true
	}

	duplicates := 0
	for _, h := range hands {
		if existing[h.GameID] {
			duplicates++
		}
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"raw_text", "raw_text_hash", "source_file", "session_meta", "updated_at",
		}),
	}).Create(&hands).Error; err != nil {
		return 0, 0, fmt.Errorf("写入原始手牌失败: %w", err)
	}

	return len(hands) - duplicates, duplicates + collapsed, nil
}

// FetchUnparsed 取未解析手牌：无任何 hand_players 关联即未解析，按ID升序取批
func (r *handRepository) FetchUnparsed(ctx context.Context, userID uint64, limit int) ([]*model.RawHand, error) {
	if limit <= 0 {
		limit = 500
	}
	var hands []*model.RawHand
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("NOT EXISTS (SELECT 1 FROM hand_players hp WHERE hp.hand_id = hands.id)").
		Order("id ASC").
		Limit(limit).
		Find(&hands).Error; err != nil {
		return nil, fmt.Errorf("查询未解析手牌失败: %w", err)
	}
	return hands, nil
}

// CountUnparsed 统计未解析手牌数
func (r *handRepository) CountUnparsed(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.RawHand{}).
		Where("user_id = ?", userID).
		Where("NOT EXISTS (SELECT 1 FROM hand_players hp WHERE hp.hand_id = hands.id)").
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计未解析手牌失败: %w", err)
	}
	return count, nil
}
