package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"HandSync/internal/canon"
	"HandSync/internal/model"
	"HandSync/internal/money"
)

type xmlCards struct {
	Type   string `xml:"type,attr"`
	Player string `xml:"player,attr"`
	Text   string `xml:",chardata"`
}

type xmlAction struct {
	No     string `xml:"no,attr"`
	Player string `xml:"player,attr"`
	Sum    string `xml:"sum,attr"`
	Type   string `xml:"type,attr"`
}

type xmlRound struct {
	No      string      `xml:"no,attr"`
	Cards   []xmlCards  `xml:"cards"`
	Actions []xmlAction `xml:"action"`
}

type xmlSeat struct {
	Name   string `xml:"name,attr"`
	Seat   string `xml:"seat,attr"`
	Dealer string `xml:"dealer,attr"`
	Chips  string `xml:"chips,attr"`
	Bet    string `xml:"bet,attr"`
	Win    string `xml:"win,attr"`
}

type xmlGame struct {
	Gamecode string     `xml:"gamecode,attr"`
	Seats    []xmlSeat  `xml:"general>players>player"`
	Rounds   []xmlRound `xml:"round"`
}

// xmlWrapper 任意根（hand/session/未知）下取首个 <game> 子元素
type xmlWrapper struct {
	Game *xmlGame `xml:"game"`
}

// ParseXMLHand 解析存库的单手 XML（<hand> 包装、裸 <game> 或 <session> 片段均可）。
// 对同一原文重复调用产出完全一致的结果。
func ParseXMLHand(raw string) (*model.ParsedHand, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("空的原始手牌文本")
	}
	// 偶见前导残渣，截到首个 < 再解析
	if idx := strings.Index(raw, "<"); idx > 0 {
		raw = raw[idx:]
	}

	game, err := locateGame(raw)
	if err != nil {
		return nil, err
	}

	hand := &model.ParsedHand{
		GameID: strings.TrimSpace(game.Gamecode),
		Boards: map[model.Street]*string{
			model.StreetPreflop: nil,
			model.StreetFlop:    nil,
			model.StreetTurn:    nil,
			model.StreetRiver:   nil,
		},
	}

	for _, s := range game.Seats {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		var seat *int
		if n, err := strconv.Atoi(strings.TrimSpace(s.Seat)); err == nil {
			seat = &n
		}
		hand.Players = append(hand.Players, model.SeatInfo{
			ScreenName:    name,
			Seat:          seat,
			StartingStack: money.ParseOrZero(s.Chips),
			IsDealer:      strings.TrimSpace(s.Dealer) == "1",
		})

		// XML方言的结果直接来自 bet/win 属性：net = win - bet
		bet := money.ParseOrZero(s.Bet)
		win := money.ParseOrZero(s.Win)
		hand.Results = append(hand.Results, model.ParsedResult{
			Player:    name,
			WonAmount: win,
			NetAmount: win.Sub(bet),
		})
	}
	if len(hand.Players) == 0 {
		return nil, errors.New("手牌中未找到玩家")
	}
	hand.TableSize = len(hand.Players)

	for _, rnd := range game.Rounds {
		street := canon.StreetFromRoundNo(rnd.No)

		for _, c := range rnd.Cards {
			// 带 player 属性的是手牌，公共牌没有
			if strings.TrimSpace(c.Player) != "" {
				continue
			}
			text := strings.TrimSpace(c.Text)
			if text == "" {
				continue
			}
			switch strings.ToLower(strings.TrimSpace(c.Type)) {
			case "flop":
				hand.Boards[model.StreetFlop] = &text
			case "turn":
				hand.Boards[model.StreetTurn] = &text
			case "river":
				hand.Boards[model.StreetRiver] = &text
			default:
				// 偶见无 type 的公共牌，按轮次兜底
				if street != model.StreetPreflop {
					board := text
					hand.Boards[street] = &board
				}
			}
		}

		for _, a := range rnd.Actions {
			player := strings.TrimSpace(a.Player)
			if player == "" {
				continue
			}

			var orderNo *int
			if n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(a.No), ",", "")); err == nil {
				orderNo = &n
			}

			atype := canon.MapActionCode(a.Type)
			if strings.HasPrefix(atype, "TYPE_") {
				hand.Warnings = append(hand.Warnings,
					fmt.Sprintf("未识别的动作码 %q，已落 %s", strings.TrimSpace(a.Type), atype))
			}

			hand.Actions = append(hand.Actions, model.ParsedAction{
				Street:     street,
				OrderNo:    orderNo,
				Player:     player,
				ActionType: atype,
				Amount:     money.ParseOrZero(a.Sum),
				IsAllin:    atype == model.ActionAllin,
			})
		}
	}

	sequenceActions(hand.Actions)
	return hand, nil
}

// locateGame 取 <game> 元素：根即 game，或在 hand/session/未知根下找直接子元素
func locateGame(raw string) (*xmlGame, error) {
	root, ok := sniffXMLRoot([]byte(raw))
	if !ok {
		// 未知根也按包装尝试，能找到 <game> 就继续
		root = model.DialectHandXML
	}

	if root == model.DialectGameXML {
		var g xmlGame
		if err := xml.Unmarshal([]byte(raw), &g); err != nil {
			return nil, fmt.Errorf("XML解析失败: %w", err)
		}
		return &g, nil
	}

	var w xmlWrapper
	if err := xml.Unmarshal([]byte(raw), &w); err != nil {
		return nil, fmt.Errorf("XML解析失败: %w", err)
	}
	if w.Game == nil {
		return nil, errors.New("未找到 <game> 元素")
	}
	return w.Game, nil
}
