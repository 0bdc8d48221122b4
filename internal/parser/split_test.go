package parser

import (
	"strings"
	"testing"
)

func TestSplitClassicTxt(t *testing.T) {
	content := "GAME #123 Texas Hold'em\nSeat 1: A (100 in chips)\nbody line\n" +
		"GAME #124 Texas Hold'em\nSeat 1: B (200 in chips)\n"

	units := SplitClassicTxt(content)
	if len(units) != 2 {
		t.Fatalf("块数 = %d, 期望 2", len(units))
	}
	if units[0].GameID != "123" || units[1].GameID != "124" {
		t.Errorf("ids = %s, %s, 期望 123, 124", units[0].GameID, units[1].GameID)
	}
	// 边界归属其后的块
	if !strings.HasPrefix(units[0].RawText, "GAME #123") {
		t.Errorf("块0应以自己的头开始: %q", units[0].RawText)
	}
	if strings.Contains(units[0].RawText, "GAME #124") {
		t.Error("块0不应包含下一手的头")
	}
	if !strings.Contains(units[1].RawText, "Seat 1: B") {
		t.Error("块1应包含自己的正文")
	}
}

func TestSplitClassicTxtLeadingJunk(t *testing.T) {
	units := SplitClassicTxt("export notes\n\nGAME #9 x\nbody\n")
	if len(units) != 1 || units[0].GameID != "9" {
		t.Fatalf("units = %+v, 期望仅#9一手", units)
	}
}

func TestSplitClassicTxtEmpty(t *testing.T) {
	if units := SplitClassicTxt("no headers here\n"); len(units) != 0 {
		t.Errorf("无头输入应得零手, got %d", len(units))
	}
}

const sessionSample = `<session sessioncode="4711">
  <general>
    <nickname>hero</nickname>
    <tablename>Turbo 3max</tablename>
    <tournamentcode>T99</tournamentcode>
    <tournamentname>Sunday Turbo</tournamentname>
    <startdate>2015-03-01 20:00:00</startdate>
  </general>
  <game gamecode="1001">
    <general><players><player name="hero" seat="1" dealer="1" chips="500" bet="20" win="0"/></players></general>
    <round no="1"><action no="1" player="hero" sum="20" type="0"/></round>
  </game>
  <game>
    <general><players/></general>
  </game>
  <game gamecode="1002">
    <round no="1"/>
  </game>
</session>`

func TestSplitSessionXML(t *testing.T) {
	units, skipped, err := SplitSessionXML(sessionSample)
	if err != nil {
		t.Fatalf("SplitSessionXML: %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, 期望 1（缺失gamecode的game）", skipped)
	}
	if len(units) != 2 {
		t.Fatalf("手数 = %d, 期望 2", len(units))
	}
	if units[0].GameID != "1001" || units[1].GameID != "1002" {
		t.Errorf("ids = %s, %s", units[0].GameID, units[1].GameID)
	}

	// 包装保留会话元数据，后续阶段无需会话状态
	raw := units[0].RawText
	for _, want := range []string{
		`<hand source="champion_xml"`,
		`sessioncode="4711"`,
		`nickname="hero"`,
		`tablename="Turbo 3max"`,
		`tournamentcode="T99"`,
		`tournamentname="Sunday Turbo"`,
		`startdate="2015-03-01 20:00:00"`,
		`gamecode="1001"`,
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("包装缺少 %s:\n%s", want, raw)
		}
	}
	// 原 <game> 字节原样保留
	if !strings.Contains(raw, `<game gamecode="1001">`) || !strings.Contains(raw, `</hand>`) {
		t.Errorf("game载荷未保留: %s", raw)
	}
	if !strings.Contains(raw, `<action no="1" player="hero" sum="20" type="0"/>`) {
		t.Errorf("game内容未原样保留: %s", raw)
	}

	if units[0].SessionMeta["tablename"] != "Turbo 3max" {
		t.Errorf("SessionMeta = %v", units[0].SessionMeta)
	}

	// 包装后的单手可直接再解析
	hand, err := ParseXMLHand(raw)
	if err != nil {
		t.Fatalf("再解析包装手失败: %v", err)
	}
	if hand.GameID != "1001" || len(hand.Players) != 1 {
		t.Errorf("再解析结果异常: id=%s players=%d", hand.GameID, len(hand.Players))
	}
}

func TestSplitSessionXMLBadRoot(t *testing.T) {
	if _, _, err := SplitSessionXML(`<game gamecode="1"/>`); err == nil {
		t.Error("非session根应报错")
	}
}

func TestSingleXMLUnit(t *testing.T) {
	unit, err := SingleXMLUnit(`<game gamecode="88"><round no="1"/></game>`)
	if err != nil {
		t.Fatalf("SingleXMLUnit: %v", err)
	}
	if unit.GameID != "88" {
		t.Errorf("GameID = %s, 期望 88", unit.GameID)
	}

	// hand 包装根：id 在包装属性上
	unit, err = SingleXMLUnit(`<hand gamecode="99"><game gamecode="99"/></hand>`)
	if err != nil || unit.GameID != "99" {
		t.Errorf("hand根: unit=%+v err=%v", unit, err)
	}

	// 缺失 id 计为失败
	if _, err := SingleXMLUnit(`<game><round no="1"/></game>`); err == nil {
		t.Error("缺失gamecode应报错")
	}
}
