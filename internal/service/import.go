package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"HandSync/internal/config"
	"HandSync/internal/interfaces"
	"HandSync/internal/model"
	"HandSync/internal/parser"
	"HandSync/internal/repository"
)

// ErrUnrecognizedFormat 输入无法识别为任何方言：文件级结构失败，零手产出，非崩溃。
// 编排层据此把来源文件搬入 failed 目录。
var ErrUnrecognizedFormat = errors.New("无法识别的牌谱格式")

// ImportSummary 单次导入的汇总；逐手状态收敛为 新增/重复/跳过 计数
type ImportSummary struct {
	RunID      string        `json:"run_id"`
	Dialect    model.Dialect `json:"dialect"`
	HandsFound int           `json:"hands_found"`
	Inserted   int           `json:"inserted"`
	Duplicates int           `json:"duplicates"`
	Skipped    int           `json:"skipped"` // 缺失原生ID被跳过的手数
}

type ImportService struct {
	logger *logrus.Logger
	repo   interfaces.HandRepository
	cfg    *config.Config
}

func NewImportService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *ImportService {
	return &ImportService{
		logger: logger,
		repo:   repository.NewHandRepository(db),
		cfg:    cfg,
	}
}

// ImportContent 导入一份原始输入：识别方言 → 切分单手 → 批量幂等入库。
// 核心只读输入、绝不动文件系统；sourceName 仅作为来源标识与扩展名提示。
func (s *ImportService) ImportContent(ctx context.Context, username, sourceName string, content []byte) (*ImportSummary, error) {
	runID := uuid.NewString()
	log := s.logger.WithFields(logrus.Fields{"run_id": runID, "source": sourceName})

	dialect := parser.Classify(content, filepath.Ext(sourceName))
	if dialect == model.DialectUnrecognized {
		log.Warn("输入无法识别为任何方言")
		return nil, fmt.Errorf("%s: %w", sourceName, ErrUnrecognizedFormat)
	}

	tokenizer, ok := parser.TokenizerFor(dialect)
	if !ok {
		return nil, fmt.Errorf("方言 %s 未注册分词器", dialect)
	}

	units, skipped, err := tokenizer.SplitHands(string(content))
	if err != nil {
		log.Warnf("切分失败: %v", err)
		return nil, fmt.Errorf("%s: %w", sourceName, ErrUnrecognizedFormat)
	}

	summary := &ImportSummary{
		RunID:      runID,
		Dialect:    dialect,
		HandsFound: len(units),
		Skipped:    skipped,
	}
	if len(units) == 0 {
		log.Warn("文件中未发现手牌")
		return summary, nil
	}

	userID, err := s.repo.EnsureUser(ctx, username)
	if err != nil {
		return nil, err
	}

	batchSize := s.cfg.Import.BatchSize
	for start := 0; start < len(units); start += batchSize {
		end := start + batchSize
		if end > len(units) {
			end = len(units)
		}

		rows := make([]*model.RawHand, 0, end-start)
		for _, u := range units[start:end] {
			rows = append(rows, rawHandRow(userID, sourceName, u))
		}

		inserted, duplicates, err := s.repo.SaveRawHands(ctx, rows)
		if err != nil {
			return nil, fmt.Errorf("%s入库失败: %w", sourceName, err)
		}
		summary.Inserted += inserted
		summary.Duplicates += duplicates
	}

	log.WithFields(logrus.Fields{
		"dialect":    dialect,
		"hands":      summary.HandsFound,
		"inserted":   summary.Inserted,
		"duplicates": summary.Duplicates,
		"skipped":    summary.Skipped,
	}).Info("导入完成")
	return summary, nil
}

// rawHandRow 构造入库行：内容哈希仅用于审计，不参与身份判定
func rawHandRow(userID uint64, sourceName string, u model.RawUnit) *model.RawHand {
	sum := sha256.Sum256([]byte(u.RawText))
	row := &model.RawHand{
		UserID:      userID,
		GameID:      u.GameID,
		SourceFile:  sourceName,
		RawTextHash: hex.EncodeToString(sum[:]),
		RawText:     u.RawText,
	}
	if len(u.SessionMeta) > 0 {
		if b, err := json.Marshal(u.SessionMeta); err == nil {
			row.SessionMeta = b
		}
	}
	return row
}
