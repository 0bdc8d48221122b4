package parser

import (
	"math"
	"sort"

	"HandSync/internal/canon"
	"HandSync/internal/model"
)

// sequenceActions 对一手的全部动作施加唯一确定的全序并重排为连续 1..N：
// 先按街序，再按原生序号；无序号的动作用哨兵排到最后且保持原相对顺序。
// 源数据的序号缺口、重复、缺失都在此抹平，下游统计依赖首个达标动作的判定。
func sequenceActions(actions []model.ParsedAction) {
	key := func(a model.ParsedAction) int {
		if a.OrderNo == nil {
			return math.MaxInt
		}
		return *a.OrderNo
	}
	sort.SliceStable(actions, func(i, j int) bool {
		ri, rj := canon.StreetRank(actions[i].Street), canon.StreetRank(actions[j].Street)
		if ri != rj {
			return ri < rj
		}
		return key(actions[i]) < key(actions[j])
	})
	for i := range actions {
		n := i + 1
		actions[i].OrderNo = &n
	}
}
