package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"HandSync/internal/config"
	"HandSync/internal/interfaces"
	"HandSync/internal/parser"
	"HandSync/internal/repository"
)

// ParseSummary 一次增量解析的汇总
type ParseSummary struct {
	Pending int64 `json:"pending"` // 开跑时未解析手数
	Parsed  int   `json:"parsed"`
	Actions int   `json:"actions"`
	Results int   `json:"results"`
	Errors  int   `json:"errors"`
}

// ParseService 增量驱动器：只处理未解析手牌，按批提交，单手失败隔离
type ParseService struct {
	logger     *logrus.Logger
	handRepo   interfaces.HandRepository
	parsedRepo interfaces.ParsedRepository
	cfg        *config.Config
}

func NewParseService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *ParseService {
	return &ParseService{
		logger:     logger,
		handRepo:   repository.NewHandRepository(db),
		parsedRepo: repository.NewParsedRepository(db),
		cfg:        cfg,
	}
}

// CountPending 统计指定用户的未解析手数
func (s *ParseService) CountPending(ctx context.Context, username string) (int64, error) {
	userID, err := s.handRepo.GetUser(ctx, username)
	if err != nil {
		return 0, err
	}
	return s.handRepo.CountUnparsed(ctx, userID)
}

// ParseIncremental 选取无 hand_players 关联的手牌，按ID升序定批处理。
// 单手解析失败仅计数并回滚该手（坏源数据很常见，硬中止会卡死后续全部手牌）；
// 外部取消在手与手之间生效，绝不留下半写的子表行集。
// limit <= 0 表示处理全部积压。
func (s *ParseService) ParseIncremental(ctx context.Context, username string, limit int) (*ParseSummary, error) {
	userID, err := s.handRepo.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}

	pending, err := s.handRepo.CountUnparsed(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := &ParseSummary{Pending: pending}
	if pending == 0 {
		s.logger.Info("没有未解析手牌，无事可做")
		return summary, nil
	}

	remaining := limit
	if remaining <= 0 {
		remaining = int(pending)
	}

	for remaining > 0 {
		batchLimit := s.cfg.Import.ParseBatchSize
		if batchLimit > remaining {
			batchLimit = remaining
		}

		hands, err := s.handRepo.FetchUnparsed(ctx, userID, batchLimit)
		if err != nil {
			return summary, err
		}
		if len(hands) == 0 {
			break
		}
		s.logger.Infof("处理批次: %d 手", len(hands))

		for _, h := range hands {
			// 取消只在手边界生效
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			default:
			}

			parsed, err := parser.ParseHand(h.RawText)
			if err != nil {
				summary.Errors++
				s.logger.Errorf("解析失败 hand_id=%d game_id=%s: %v", h.ID, h.GameID, err)
				continue
			}
			for _, w := range parsed.Warnings {
				s.logger.WithFields(logrus.Fields{
					"hand_id": h.ID, "game_id": h.GameID,
				}).Warn(w)
			}

			stats, err := s.parsedRepo.ReplaceParsedHand(ctx, userID, h.ID, parsed)
			if err != nil {
				if ctx.Err() != nil {
					// 存储后端失联/外部取消：中止整批
					return summary, err
				}
				summary.Errors++
				s.logger.Errorf("入库失败 hand_id=%d game_id=%s: %v", h.ID, h.GameID, err)
				continue
			}

			summary.Parsed++
			summary.Actions += stats.Actions
			summary.Results += stats.Results
		}

		remaining -= len(hands)
		// 解析失败的手仍满足未解析谓词，全批失败时停止以免空转
		if summary.Parsed == 0 && summary.Errors > 0 && len(hands) == batchLimit {
			break
		}
	}

	s.logger.WithFields(logrus.Fields{
		"parsed":  summary.Parsed,
		"actions": summary.Actions,
		"results": summary.Results,
		"errors":  summary.Errors,
	}).Info("增量解析完成")
	return summary, nil
}
