package canon

import (
	"testing"

	"HandSync/internal/model"
)

func TestMapActionCode(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"0", model.ActionFold},
		{"1", model.ActionPostSB},
		{"2", model.ActionPostBB},
		{"3", model.ActionCall},
		{"4", model.ActionCheck},
		{"5", model.ActionBet},
		{"6", model.ActionRaise},
		{"7", model.ActionAllin},
		{"15", model.ActionPostAnte},
		{"23", model.ActionRaise},
		{" 6 ", model.ActionRaise},
		// 未知数字码落 TYPE_<n>，绝不硬失败
		{"9", "TYPE_9"},
		{"42", "TYPE_42"},
		// 非数字落 TYPE_UNKNOWN
		{"", "TYPE_UNKNOWN"},
		{"x", "TYPE_UNKNOWN"},
	}
	for _, tt := range tests {
		if got := MapActionCode(tt.code); got != tt.want {
			t.Errorf("MapActionCode(%q) = %q, 期望 %q", tt.code, got, tt.want)
		}
	}
}

func TestStreetFromRoundNo(t *testing.T) {
	tests := []struct {
		no   string
		want model.Street
	}{
		{"0", model.StreetPreflop}, // 盲注/前注并入翻前
		{"1", model.StreetPreflop},
		{"2", model.StreetFlop},
		{"3", model.StreetTurn},
		{"4", model.StreetRiver},
		{"5", model.StreetPreflop}, // 未识别默认翻前
		{"", model.StreetPreflop},
		{"x", model.StreetPreflop},
	}
	for _, tt := range tests {
		if got := StreetFromRoundNo(tt.no); got != tt.want {
			t.Errorf("StreetFromRoundNo(%q) = %q, 期望 %q", tt.no, got, tt.want)
		}
	}
}

func TestStreetRank(t *testing.T) {
	order := []model.Street{model.StreetPreflop, model.StreetFlop, model.StreetTurn, model.StreetRiver}
	for i := 1; i < len(order); i++ {
		if StreetRank(order[i-1]) >= StreetRank(order[i]) {
			t.Errorf("街序错误: %s 应排在 %s 之前", order[i-1], order[i])
		}
	}
	if StreetRank(model.Street("showdown")) <= StreetRank(model.StreetRiver) {
		t.Error("未知街应排在最后")
	}
}
