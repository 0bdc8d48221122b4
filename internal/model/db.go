package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type User struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Username     string    `gorm:"column:username;type:varchar(64);uniqueIndex;not null;comment:用户名"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(128);not null;default:x;comment:密码哈希（导入工具不使用）"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

// RawHand 原始手牌表（hands）：一条 = 一手未解析的原始牌谱
// 唯一键为 (user_id, game_id)；raw_text_hash 仅用于审计，不参与身份判定
type RawHand struct {
	ID          uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	UserID      uint64         `gorm:"column:user_id;type:bigint;not null;uniqueIndex:uq_user_game;comment:归属用户ID"`
	GameID      string         `gorm:"column:game_id;type:varchar(64);not null;uniqueIndex:uq_user_game;comment:房间原生牌局ID"`
	SourceFile  string         `gorm:"column:source_file;type:varchar(512);comment:来源文件标识"`
	RawTextHash string         `gorm:"column:raw_text_hash;type:varchar(64);not null;comment:原文SHA256（审计用）"`
	RawText     string         `gorm:"column:raw_text;type:text;not null;comment:原始牌谱文本"`
	SessionMeta datatypes.JSON `gorm:"column:session_meta;type:jsonb;comment:会话级元数据（XML session 拆分时冗余保存）"`
	CreatedAt   time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:导入时间"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// Player 玩家池（players）：同一用户下 screen_name 唯一，首次出现时懒创建，永不删除
type Player struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	UserID     uint64    `gorm:"column:user_id;type:bigint;not null;uniqueIndex:uq_user_screen;comment:归属用户ID"`
	ScreenName string    `gorm:"column:screen_name;type:varchar(128);not null;uniqueIndex:uq_user_screen;comment:玩家昵称"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

// HandPlayer 每手的座位信息（hand_players）
type HandPlayer struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	HandID        uint64          `gorm:"column:hand_id;type:bigint;not null;uniqueIndex:uq_hand_player;comment:关联手牌ID"`
	PlayerID      uint64          `gorm:"column:player_id;type:bigint;not null;uniqueIndex:uq_hand_player;comment:关联玩家ID"`
	Seat          *int            `gorm:"column:seat;type:int;comment:座位号（可空）"`
	StartingStack decimal.Decimal `gorm:"column:starting_stack;type:numeric(18,2);not null;comment:起始筹码"`
	IsDealer      bool            `gorm:"column:is_dealer;type:boolean;not null;default:false;comment:是否庄位"`
}

// StreetBoard 每手每条街一行（streets），四条街恒定存在，公共牌可为空
type StreetBoard struct {
	ID     uint64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	HandID uint64  `gorm:"column:hand_id;type:bigint;not null;uniqueIndex:uq_hand_street;comment:关联手牌ID"`
	Street Street  `gorm:"column:street;type:varchar(16);not null;uniqueIndex:uq_hand_street;comment:街名"`
	Board  *string `gorm:"column:board;type:varchar(64);comment:公共牌文本（可空）"`
}

// Action 动作表（actions）：action_no 在一手内连续 1..N、严格递增
type Action struct {
	ID         uint64          `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	HandID     uint64          `gorm:"column:hand_id;type:bigint;not null;index;comment:关联手牌ID"`
	Street     Street          `gorm:"column:street;type:varchar(16);not null;comment:街名"`
	ActionNo   int             `gorm:"column:action_no;type:int;not null;comment:手内序号（连续1..N）"`
	PlayerID   uint64          `gorm:"column:player_id;type:bigint;not null;index;comment:关联玩家ID"`
	ActionType string          `gorm:"column:action_type;type:varchar(32);not null;comment:规范动作类型"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric(18,2);not null;comment:动作金额（无金额为0）"`
	IsAllin    bool            `gorm:"column:is_allin;type:boolean;not null;default:false;comment:是否全下"`
}

// HandResult 每手每玩家的净结果（hand_results）：每个 HandPlayer 恰好一行
type HandResult struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	HandID    uint64          `gorm:"column:hand_id;type:bigint;not null;uniqueIndex:uq_hand_result_player;comment:关联手牌ID"`
	PlayerID  uint64          `gorm:"column:player_id;type:bigint;not null;uniqueIndex:uq_hand_result_player;comment:关联玩家ID"`
	WonAmount decimal.Decimal `gorm:"column:won_amount;type:numeric(18,2);not null;comment:赢得金额"`
	NetAmount decimal.Decimal `gorm:"column:net_amount;type:numeric(18,2);not null;comment:净结果（赢-投入）"`
}

// HandSize 发牌时的桌面人数（hand_sizes），供下游按 HU/3人桌等过滤
type HandSize struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	HandID      uint64 `gorm:"column:hand_id;type:bigint;not null;uniqueIndex;comment:关联手牌ID"`
	PlayerCount int    `gorm:"column:player_count;type:int;not null;comment:发牌时人数"`
}

func (User) TableName() string        { return "users" }
func (RawHand) TableName() string     { return "hands" }
func (Player) TableName() string      { return "players" }
func (HandPlayer) TableName() string  { return "hand_players" }
func (StreetBoard) TableName() string { return "streets" }
func (Action) TableName() string      { return "actions" }
func (HandResult) TableName() string  { return "hand_results" }
func (HandSize) TableName() string    { return "hand_sizes" }
