package model

import (
	"github.com/shopspring/decimal"
)

// RawUnit 切分后的单手原始单元（尚未入库）
type RawUnit struct {
	GameID      string            // 房间原生牌局ID
	RawText     string            // 单手原文
	SessionMeta map[string]string // 会话级元数据（仅 XML session 方言有）
}

// SeatInfo 解析出的座位信息
type SeatInfo struct {
	ScreenName    string
	Seat          *int
	StartingStack decimal.Decimal
	IsDealer      bool
}

// ParsedAction 解析出的单个动作；OrderNo 为源里的原生序号，缺失时为 nil，
// 由定序器统一重排为连续 1..N
type ParsedAction struct {
	Street     Street
	OrderNo    *int
	Player     string
	ActionType string
	Amount     decimal.Decimal
	IsAllin    bool
}

// ParsedResult 解析出的单个玩家净结果
type ParsedResult struct {
	Player    string
	WonAmount decimal.Decimal
	NetAmount decimal.Decimal
}

// ParsedHand 一手牌的完整解析结果：对同一 RawText 重复解析必须产出完全一致的内容
type ParsedHand struct {
	GameID    string
	TableSize int
	Players   []SeatInfo
	Boards    map[Street]*string
	Actions   []ParsedAction
	Results   []ParsedResult
	TotalPot  decimal.Decimal
	Rake      decimal.Decimal
	// Warnings 字段兜底类告警（未知动作码、金额解析失败），随数据落查而非抛错
	Warnings []string
}
