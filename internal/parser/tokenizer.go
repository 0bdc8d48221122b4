package parser

import (
	"strings"

	"HandSync/internal/interfaces"
	"HandSync/internal/model"
)

// ========== 方言分词器注册表 ==========
// 分类器产出方言标签，这里换取对应分词器；新增方言只需在此登记

type sessionXMLTokenizer struct{}

func (sessionXMLTokenizer) Dialect() model.Dialect { return model.DialectSessionXML }

func (sessionXMLTokenizer) SplitHands(content string) ([]model.RawUnit, int, error) {
	return SplitSessionXML(content)
}

type singleXMLTokenizer struct {
	dialect model.Dialect
}

func (t singleXMLTokenizer) Dialect() model.Dialect { return t.dialect }

// SplitHands 整份文档即一手
func (t singleXMLTokenizer) SplitHands(content string) ([]model.RawUnit, int, error) {
	unit, err := SingleXMLUnit(content)
	if err != nil {
		return nil, 1, err
	}
	return []model.RawUnit{unit}, 0, nil
}

type classicTxtTokenizer struct {
	dialect model.Dialect
}

func (t classicTxtTokenizer) Dialect() model.Dialect { return t.dialect }

// SplitHands 文件粒度按 GAME # 头切块（PokerTracker 文件可能串接多手，同样适用）
func (t classicTxtTokenizer) SplitHands(content string) ([]model.RawUnit, int, error) {
	return SplitClassicTxt(content), 0, nil
}

var tokenizerRegistry = map[model.Dialect]interfaces.DialectTokenizer{
	model.DialectSessionXML:   sessionXMLTokenizer{},
	model.DialectGameXML:      singleXMLTokenizer{dialect: model.DialectGameXML},
	model.DialectHandXML:      singleXMLTokenizer{dialect: model.DialectHandXML},
	model.DialectClassicTxt:   classicTxtTokenizer{dialect: model.DialectClassicTxt},
	model.DialectPokerTracker: classicTxtTokenizer{dialect: model.DialectPokerTracker},
}

// TokenizerFor 获取方言对应的分词器
func TokenizerFor(d model.Dialect) (interfaces.DialectTokenizer, bool) {
	t, ok := tokenizerRegistry[d]
	return t, ok
}

// ParseHand 解析一条已入库的原始手牌：XML 原文走 XML 路径，其余走行扫描器。
// 解析是 RawText 的纯函数，相同原文必然产出相同结果。
func ParseHand(raw string) (*model.ParsedHand, error) {
	if strings.HasPrefix(strings.TrimSpace(raw), "<") {
		return ParseXMLHand(raw)
	}
	return ParsePokerTrackerHand(raw)
}
