// Package canon 把各方言的街/动作词汇映射到固定的规范枚举。
package canon

import (
	"fmt"
	"strconv"
	"strings"

	"HandSync/internal/model"
)

// actionTypeMap iPoker XML 数字动作码 → 规范动作类型。
// 静态配置：只读不写，运行期不得修改。
// 遇到未知码时落 TYPE_<n>，下游统计需自行排除此类合成值。
var actionTypeMap = map[int]string{
	0:  model.ActionFold,
	1:  model.ActionPostSB,
	2:  model.ActionPostBB,
	3:  model.ActionCall,
	4:  model.ActionCheck,
	5:  model.ActionBet,
	6:  model.ActionRaise,
	7:  model.ActionAllin, // 常见为 call-allin / allin
	15: model.ActionPostAnte,
	23: model.ActionRaise, // 这批日志里 open/raise 常用 23
}

// MapActionCode 映射 XML 动作码；解析不会因未见过的码硬失败
func MapActionCode(code string) string {
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return "TYPE_UNKNOWN"
	}
	if t, ok := actionTypeMap[n]; ok {
		return t
	}
	return fmt.Sprintf("TYPE_%d", n)
}

// StreetFromRoundNo 原生轮次号收敛到四条规范街：
// 0/1 → preflop（盲注/前注并入翻前）；2/3/4 → flop/turn/river；其余默认 preflop
func StreetFromRoundNo(roundNo string) model.Street {
	n, err := strconv.Atoi(strings.TrimSpace(roundNo))
	if err != nil {
		return model.StreetPreflop
	}
	switch n {
	case 0, 1:
		return model.StreetPreflop
	case 2:
		return model.StreetFlop
	case 3:
		return model.StreetTurn
	case 4:
		return model.StreetRiver
	}
	return model.StreetPreflop
}

// streetRank 街序：preflop < flop < turn < river
var streetRank = map[model.Street]int{
	model.StreetPreflop: 0,
	model.StreetFlop:    1,
	model.StreetTurn:    2,
	model.StreetRiver:   3,
}

// StreetRank 返回街的排序权重，未知街排在最后
func StreetRank(s model.Street) int {
	if r, ok := streetRank[s]; ok {
		return r
	}
	return 9
}
