// Package parser 牌谱解析：格式识别、按方言切分、单手解析、动作定序、结果推导。
// 分类只做一次，产出带标签的方言枚举，后续管线不再按格式形状分支。
package parser

import (
	"bytes"
	"encoding/xml"
	"regexp"
	"strings"

	"HandSync/internal/model"
)

var (
	// 经典TXT方言的手牌头：GAME #<digits>
	gameHeaderRe = regexp.MustCompile(`^GAME\s+#(\d+)`)
	// PokerTracker 座位行：Seat X: <name> (<amount> in chips) [DEALER]
	seatRe = regexp.MustCompile(`(?i)^Seat\s+(\d+):\s+(\S+)\s+\(([€$£\d.,]+)\s+in\s+chips\)\s*(DEALER)?`)
)

// sniffLines 行式探测时检查的开头行数
const sniffLines = 15

// Classify 检查原始输入并选择方言。
// 规则：扩展名为 xml 或去除前导空白后以 < 开头 → 尝试按根标签分派；
// 失败则退回行式探测：首个非空行形如 GAME #<digits> 即文本方言，
// 开头若干行内出现带筹码的座位行选 PokerTracker，否则经典TXT。
// 无法识别返回 DialectUnrecognized（零手，文件级结构失败，绝不崩溃）。
func Classify(content []byte, ext string) model.Dialect {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return model.DialectUnrecognized
	}

	if strings.EqualFold(strings.TrimPrefix(ext, "."), "xml") || trimmed[0] == '<' {
		if d, ok := sniffXMLRoot(trimmed); ok {
			return d
		}
	}

	lines := strings.Split(string(trimmed), "\n")
	first := ""
	for _, line := range lines {
		if s := strings.TrimSpace(line); s != "" {
			first = s
			break
		}
	}
	if !gameHeaderRe.MatchString(first) {
		return model.DialectUnrecognized
	}

	limit := sniffLines
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		if seatRe.MatchString(strings.TrimSpace(line)) {
			return model.DialectPokerTracker
		}
	}
	return model.DialectClassicTxt
}

// sniffXMLRoot 读出根元素名并分派方言；解析失败或根未知则放弃，回落行式探测
func sniffXMLRoot(content []byte) (model.Dialect, bool) {
	dec := xml.NewDecoder(bytes.NewReader(content))
	for {
		tok, err := dec.Token()
		if err != nil {
			return model.DialectUnrecognized, false
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch strings.ToLower(se.Name.Local) {
		case "session":
			return model.DialectSessionXML, true
		case "game":
			return model.DialectGameXML, true
		case "hand":
			return model.DialectHandXML, true
		}
		return model.DialectUnrecognized, false
	}
}
