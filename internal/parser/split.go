package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"HandSync/internal/model"
)

// 手牌块边界：行首的 GAME #<digits>，边界归属其后的块
var gameBoundaryRe = regexp.MustCompile(`(?m)^GAME\s+#\d+`)

// SplitClassicTxt 按 GAME # 头把整文件切成单手块；id 取头部捕获的数字。
// 头部之前的残渣与空块直接丢弃。
func SplitClassicTxt(content string) []model.RawUnit {
	idx := gameBoundaryRe.FindAllStringIndex(content, -1)
	units := make([]model.RawUnit, 0, len(idx))
	for i, loc := range idx {
		end := len(content)
		if i+1 < len(idx) {
			end = idx[i+1][0]
		}
		block := strings.TrimSpace(content[loc[0]:end])
		if block == "" {
			continue
		}
		m := gameHeaderRe.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		units = append(units, model.RawUnit{GameID: m[1], RawText: block})
	}
	return units
}

// sessionGeneral 会话级 <general> 元数据，逐手冗余下发，后续阶段无需会话状态
type sessionGeneral struct {
	Nickname       string `xml:"nickname"`
	TableName      string `xml:"tablename"`
	TournamentCode string `xml:"tournamentcode"`
	TournamentName string `xml:"tournamentname"`
	StartDate      string `xml:"startdate"`
}

// SplitSessionXML 把 <session> 文档拆成单手单元：每个 <game> 子元素一手，
// 原样保留 <game> 字节并包进携带会话元数据的 <hand> 包装。
// 缺失 gamecode 属性的 <game> 跳过并计数（第二个返回值）。
func SplitSessionXML(content string) ([]model.RawUnit, int, error) {
	dec := xml.NewDecoder(strings.NewReader(content))

	var (
		units       []model.RawUnit
		skipped     int
		sessionCode string
		general     sessionGeneral
		depth       int
		inSession   bool
	)

	lastOffset := dec.InputOffset()
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, 0, fmt.Errorf("解析session XML失败: %w", err)
		}

		switch se := tok.(type) {
		case xml.StartElement:
			depth++
			name := strings.ToLower(se.Name.Local)

			if depth == 1 {
				if name != "session" {
					return nil, 0, fmt.Errorf("非 session 根元素: %s", se.Name.Local)
				}
				inSession = true
				sessionCode = attrValue(se, "sessioncode")
				break
			}

			if depth == 2 && inSession {
				switch name {
				case "general":
					if err := dec.DecodeElement(&general, &se); err != nil {
						return nil, 0, fmt.Errorf("解析session元数据失败: %w", err)
					}
					depth--
				case "game":
					gamecode := strings.TrimSpace(attrValue(se, "gamecode"))
					start := lastOffset
					if err := dec.Skip(); err != nil {
						return nil, 0, fmt.Errorf("读取game元素失败: %w", err)
					}
					depth--
					if gamecode == "" {
						skipped++
						break
					}
					rawGame := content[start:dec.InputOffset()]
					meta := sessionMeta(sessionCode, general)
					units = append(units, model.RawUnit{
						GameID:      gamecode,
						RawText:     wrapHand(gamecode, sessionCode, general, rawGame),
						SessionMeta: meta,
					})
				default:
					if err := dec.Skip(); err != nil {
						return nil, 0, fmt.Errorf("读取session子元素失败: %w", err)
					}
					depth--
				}
			}
		case xml.EndElement:
			depth--
		}

		lastOffset = dec.InputOffset()
	}

	return units, skipped, nil
}

// SingleXMLUnit 把整份 game/hand 文档当作单手单元，id 取 gamecode 属性
func SingleXMLUnit(content string) (model.RawUnit, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return model.RawUnit{}, errors.New("XML手牌缺失gamecode属性")
		}
		if err != nil {
			return model.RawUnit{}, fmt.Errorf("解析XML手牌失败: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch strings.ToLower(se.Name.Local) {
		case "game", "hand":
			if code := strings.TrimSpace(attrValue(se, "gamecode")); code != "" {
				return model.RawUnit{GameID: code, RawText: strings.TrimSpace(content)}, nil
			}
			// 包装根上没有id时向内找 <game>
			continue
		default:
			return model.RawUnit{}, fmt.Errorf("不支持的根元素: %s", se.Name.Local)
		}
	}
}

func attrValue(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value
		}
	}
	return ""
}

func sessionMeta(sessionCode string, g sessionGeneral) map[string]string {
	meta := map[string]string{}
	put := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			meta[k] = v
		}
	}
	put("sessioncode", sessionCode)
	put("nickname", g.Nickname)
	put("tablename", g.TableName)
	put("tournamentcode", g.TournamentCode)
	put("tournamentname", g.TournamentName)
	put("startdate", g.StartDate)
	if len(meta) == 0 {
		return nil
	}
	return meta
}

// wrapHand 生成单手包装：<hand source=... sessioncode=... gamecode=...>原game字节</hand>
func wrapHand(gamecode, sessionCode string, g sessionGeneral, rawGame string) string {
	var b strings.Builder
	b.WriteString(`<hand source="champion_xml"`)
	attr := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			b.WriteString(fmt.Sprintf(` %s="%s"`, k, xmlEscape(v)))
		}
	}
	attr("sessioncode", sessionCode)
	attr("nickname", g.Nickname)
	attr("tablename", g.TableName)
	attr("tournamentcode", g.TournamentCode)
	attr("tournamentname", g.TournamentName)
	attr("startdate", g.StartDate)
	attr("gamecode", gamecode)
	b.WriteString(">")
	b.WriteString(rawGame)
	b.WriteString("</hand>")
	return b.String()
}

var xmlAttrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func xmlEscape(s string) string {
	return xmlAttrEscaper.Replace(s)
}
