package parser

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"HandSync/internal/model"
	"HandSync/internal/money"
)

// 扫描器状态：Header → Preflop → Flop → Turn → River → Summary
// 盲注/前注出现在 HOLE CARDS 横幅之前，故初始即按翻前捕获
type ptState int

const (
	statePreflop ptState = iota
	stateFlop
	stateTurn
	stateRiver
	stateSummary
)

var ptStateStreet = map[ptState]model.Street{
	statePreflop: model.StreetPreflop,
	stateFlop:    model.StreetFlop,
	stateTurn:    model.StreetTurn,
	stateRiver:   model.StreetRiver,
}

var (
	tableSizeRe  = regexp.MustCompile(`Table Size\s+(\d+)`)
	boardRe      = regexp.MustCompile(`\[([^\]]+)\]`)
	actionLineRe = regexp.MustCompile(`^([^:]+):\s+(.*)`)
	amountRe     = regexp.MustCompile(`[€$£\d.,]+`)
	totalPotRe   = regexp.MustCompile(`Total pot\s+([€$£\d.,]+)(?:\s+Rake\s+([€$£\d.,]+))?`)
	winsRe       = regexp.MustCompile(`^([^:]+):\s+wins\s+([€$£\d.,]+)`)
)

// ptKeyword 动作关键词条目；monetary 标记该动作携带金额并计入投入
type ptKeyword struct {
	prefix   string
	atype    string
	monetary bool
}

// ptKeywords 首个匹配生效的固定优先序。顺序是刻意的判决规则，
// 新增关键词可能悄悄改写既有行的归类，测试里钉死此序。
var ptKeywords = []ptKeyword{
	{"Post SB", model.ActionPostSB, true},
	{"Post BB", model.ActionPostBB, true},
	{"Post Ante", model.ActionPostAnte, true},
	{"Fold", model.ActionFold, false},
	{"Check", model.ActionCheck, false},
	{"Call", model.ActionCall, true},
	{"Bet", model.ActionBet, true},
	{"Raise", model.ActionRaise, true},
}

// ParsePokerTrackerHand 用状态机扫描一手 PokerTracker 风格 TXT。
// SUMMARY 之后动作捕获永久停止；不成形的行静默丢弃，不是错误。
func ParsePokerTrackerHand(raw string) (*model.ParsedHand, error) {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) == 0 {
		return nil, errors.New("空的手牌文本")
	}

	m := gameHeaderRe.FindStringSubmatch(lines[0])
	if m == nil {
		return nil, errors.New("手牌格式无效：缺少 GAME # 头")
	}

	hand := &model.ParsedHand{
		GameID:    m[1],
		TableSize: 2, // 缺省 heads-up
		Boards: map[model.Street]*string{
			model.StreetPreflop: nil,
			model.StreetFlop:    nil,
			model.StreetTurn:    nil,
			model.StreetRiver:   nil,
		},
	}

	limit := 10
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		if tm := tableSizeRe.FindStringSubmatch(line); tm != nil {
			if n, err := strconv.Atoi(tm[1]); err == nil {
				hand.TableSize = n
			}
			break
		}
	}

	invested := map[string]decimal.Decimal{}
	for _, line := range lines {
		if sm := seatRe.FindStringSubmatch(line); sm != nil {
			seat, _ := strconv.Atoi(sm[1])
			name := sm[2]
			hand.Players = append(hand.Players, model.SeatInfo{
				ScreenName:    name,
				Seat:          &seat,
				StartingStack: money.ParseOrZero(sm[3]),
				IsDealer:      sm[4] != "",
			})
			invested[name] = decimal.Zero
		}
	}
	if len(hand.Players) == 0 {
		return nil, errors.New("手牌中未找到玩家")
	}

	state := statePreflop
	winners := map[string]bool{}

	for _, line := range lines {
		switch {
		case strings.Contains(line, "*** HOLE CARDS ***"):
			state = statePreflop
			continue
		case strings.Contains(line, "*** FLOP ***"):
			state = stateFlop
			captureBoard(hand, model.StreetFlop, line)
			continue
		case strings.Contains(line, "*** TURN ***"):
			state = stateTurn
			captureBoard(hand, model.StreetTurn, line)
			continue
		case strings.Contains(line, "*** RIVER ***"):
			state = stateRiver
			captureBoard(hand, model.StreetRiver, line)
			continue
		case strings.Contains(line, "*** SUMMARY ***"):
			state = stateSummary
			continue
		}

		if state == stateSummary {
			if pm := totalPotRe.FindStringSubmatch(line); pm != nil {
				hand.TotalPot = money.ParseOrZero(pm[1])
				hand.Rake = money.ParseOrZero(pm[2])
				continue
			}
			if wm := winsRe.FindStringSubmatch(line); wm != nil {
				player := strings.TrimSpace(wm[1])
				won := money.ParseOrZero(wm[2])
				winners[player] = true
				hand.Results = append(hand.Results, model.ParsedResult{
					Player:    player,
					WonAmount: won,
					NetAmount: won.Sub(invested[player]),
				})
			}
			// SUMMARY 之后的动作形状行一律忽略
			continue
		}

		am := actionLineRe.FindStringSubmatch(line)
		if am == nil {
			continue
		}
		player := strings.TrimSpace(am[1])
		text := strings.TrimSpace(am[2])

		// 座位头与彩池行也符合 <name>: <text> 形状，排除
		if strings.HasPrefix(player, "Seat ") || strings.HasPrefix(text, "Total pot") {
			continue
		}

		kw, ok := matchKeyword(text)
		if !ok {
			continue
		}

		amount := decimal.Zero
		if kw.monetary {
			if tok := amountRe.FindString(text); tok != "" {
				amount = money.ParseOrZero(tok)
			}
			invested[player] = invested[player].Add(amount)
		}

		lower := strings.ToLower(text)
		allin := strings.Contains(text, "(NF)") ||
			strings.Contains(lower, "all-in") || strings.Contains(lower, "allin")

		hand.Actions = append(hand.Actions, model.ParsedAction{
			Street:     ptStateStreet[state],
			Player:     player,
			ActionType: kw.atype,
			Amount:     amount,
			IsAllin:    allin,
		})
	}

	// 不在赢家集合里的入座玩家合成整输结果行，保证每个座位恰好一行
	for _, p := range hand.Players {
		if winners[p.ScreenName] {
			continue
		}
		hand.Results = append(hand.Results, model.ParsedResult{
			Player:    p.ScreenName,
			WonAmount: decimal.Zero,
			NetAmount: invested[p.ScreenName].Neg(),
		})
	}

	sequenceActions(hand.Actions)
	return hand, nil
}

func matchKeyword(text string) (ptKeyword, bool) {
	for _, kw := range ptKeywords {
		if strings.HasPrefix(text, kw.prefix) {
			return kw, true
		}
	}
	return ptKeyword{}, false
}

func captureBoard(hand *model.ParsedHand, street model.Street, line string) {
	if bm := boardRe.FindStringSubmatch(line); bm != nil {
		board := bm[1]
		hand.Boards[street] = &board
	}
}
