// Package money 货币文本归一化：剥离货币符号与千位分隔符后解析为精确小数。
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// 已知货币符号；新房间出现新符号时在此追加
var currencyGlyphs = strings.NewReplacer("€", "", "$", "", "£", "", ",", "")

// Parse 解析带货币格式的数字文本。
// 空串或无法解析返回 (0, false)，供可选单值字段表达"无值"。
func Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(currencyGlyphs.Replace(strings.TrimSpace(s)))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseOrZero 动作金额与累计投入用：缺值归一化为 0（金额缺席不是错误）。
func ParseOrZero(s string) decimal.Decimal {
	d, ok := Parse(s)
	if !ok {
		return decimal.Zero
	}
	return d
}
