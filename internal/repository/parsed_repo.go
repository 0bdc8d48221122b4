package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"HandSync/internal/interfaces"
	"HandSync/internal/model"
)

type parsedRepository struct {
	db *gorm.DB
}

// NewParsedRepository 创建规范子表仓储实例
func NewParsedRepository(db *gorm.DB) interfaces.ParsedRepository {
	return &parsedRepository{db: db}
}

// ReplaceParsedHand 单事务重建一手的全部子表行。
// 玩家身份按 (user_id, screen_name) UPSERT，首见即建、永不删除；
// actions/hand_results 先删后插而非增量比对——单手行数很小，正确性优先。
// 任一步失败整体回滚，绝不留下半写的行集。
func (r *parsedRepository) ReplaceParsedHand(ctx context.Context, userID, handID uint64, parsed *model.ParsedHand) (*interfaces.ReplaceStats, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("开启事务失败: %w", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	// 1. 玩家池 UPSERT，并建立 昵称→ID 映射
	nameToID := make(map[string]uint64, len(parsed.Players))
	for _, seat := range parsed.Players {
		id, err := upsertPlayer(tx, userID, seat.ScreenName)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		nameToID[seat.ScreenName] = id
	}

	// 2. 座位信息 UPSERT
	for _, seat := range parsed.Players {
		hp := &model.HandPlayer{
			HandID:        handID,
			PlayerID:      nameToID[seat.ScreenName],
			Seat:          seat.Seat,
			StartingStack: seat.StartingStack,
			IsDealer:      seat.IsDealer,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hand_id"}, {Name: "player_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"seat", "starting_stack", "is_dealer"}),
		}).Create(hp).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("写入座位信息失败: %w", err)
		}
	}

	// 3. 四条街恒定写满，公共牌可为空
	for _, street := range model.Streets {
		sb := &model.StreetBoard{HandID: handID, Street: street, Board: parsed.Boards[street]}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hand_id"}, {Name: "street"}},
			DoUpdates: clause.AssignmentColumns([]string{"board"}),
		}).Create(sb).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("写入街面失败: %w", err)
		}
	}

	// 4. 动作先删后插；引用未入座玩家的动作跳过，序号在插入时重排保持连续
	if err := tx.Where("hand_id = ?", handID).Delete(&model.Action{}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("清除旧动作失败: %w", err)
	}
	var actionRows []*model.Action
	for _, a := range parsed.Actions {
		pid, ok := nameToID[a.Player]
		if !ok {
			continue
		}
		actionRows = append(actionRows, &model.Action{
			HandID:     handID,
			Street:     a.Street,
			ActionNo:   len(actionRows) + 1,
			PlayerID:   pid,
			ActionType: a.ActionType,
			Amount:     a.Amount,
			IsAllin:    a.IsAllin,
		})
	}
	if len(actionRows) > 0 {
		if err := tx.Create(&actionRows).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("写入动作失败: %w", err)
		}
	}

	// 5. 结果先删后插
	if err := tx.Where("hand_id = ?", handID).Delete(&model.HandResult{}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("清除旧结果失败: %w", err)
	}
	var resultRows []*model.HandResult
	for _, res := range parsed.Results {
		pid, ok := nameToID[res.Player]
		if !ok {
			continue
		}
		resultRows = append(resultRows, &model.HandResult{
			HandID:    handID,
			PlayerID:  pid,
			WonAmount: res.WonAmount,
			NetAmount: res.NetAmount,
		})
	}
	if len(resultRows) > 0 {
		if err := tx.Create(&resultRows).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("写入结果失败: %w", err)
		}
	}

	// 6. 发牌人数（供下游 HU/3人桌过滤）
	hs := &model.HandSize{HandID: handID, PlayerCount: parsed.TableSize}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hand_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"player_count"}),
	}).Create(hs).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("写入桌面人数失败: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("提交事务失败: %w", err)
	}
	return &interfaces.ReplaceStats{
		Players: len(parsed.Players),
		Actions: len(actionRows),
		Results: len(resultRows),
	}, nil
}

// upsertPlayer 玩家 UPSERT 并读回ID（冲突时 Create 拿不到主键，补查一次）
func upsertPlayer(tx *gorm.DB, userID uint64, screenName string) (uint64, error) {
	p := &model.Player{UserID: userID, ScreenName: screenName}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "screen_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"screen_name"}),
	}).Create(p).Error; err != nil {
		return 0, fmt.Errorf("写入玩家失败: %w", err)
	}
	if p.ID == 0 {
		if err := tx.Where("user_id = ? AND screen_name = ?", userID, screenName).
			First(p).Error; err != nil {
			return 0, fmt.Errorf("读回玩家ID失败: %w", err)
		}
	}
	return p.ID, nil
}
