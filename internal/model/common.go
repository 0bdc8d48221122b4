package model

// Dialect 牌谱方言枚举：分类一次，后续管线不再按格式分支
type Dialect string

const (
	DialectSessionXML   Dialect = "session_xml"  // <session> 根，含 N 个 <game>
	DialectGameXML      Dialect = "game_xml"     // <game> 根，单手
	DialectHandXML      Dialect = "hand_xml"     // 已包装的单手 <hand>
	DialectClassicTxt   Dialect = "classic_txt"  // 经典行式 TXT
	DialectPokerTracker Dialect = "pokertracker" // PokerTracker 风格 TXT
	DialectUnrecognized Dialect = "unrecognized" // 无法识别
)

// Street 规范街枚举
type Street string

const (
	StreetPreflop Street = "preflop"
	StreetFlop    Street = "flop"
	StreetTurn    Street = "turn"
	StreetRiver   Street = "river"
)

// Streets 四条街的固定顺序（streets 表恒定写满四行）
var Streets = [4]Street{StreetPreflop, StreetFlop, StreetTurn, StreetRiver}

// 规范动作类型
const (
	ActionFold     = "FOLD"
	ActionPostSB   = "POST_SB"
	ActionPostBB   = "POST_BB"
	ActionPostAnte = "POST_ANTE"
	ActionCall     = "CALL"
	ActionCheck    = "CHECK"
	ActionBet      = "BET"
	ActionRaise    = "RAISE"
	ActionAllin    = "ALLIN"
)

// 单手导入结果：编排层据此搬移来源文件
const (
	StatusImported  = "imported"
	StatusDuplicate = "duplicate"
	StatusFailed    = "failed"
)
