package repository

import (
	"testing"

	"HandSync/internal/model"
)

// 同一文件里同一 GAME # 出现两次（串接/重导出的历史很常见）时，
// 两行共用冲突键不能进同一条多行 upsert，必须先在批内收敛
func TestDedupeByGameID(t *testing.T) {
	hands := []*model.RawHand{
		{GameID: "123", RawText: "第一份"},
		{GameID: "124", RawText: "独占"},
		{GameID: "123", RawText: "第二份"},
		{GameID: "125", RawText: "另一手"},
		{GameID: "123", RawText: "第三份"},
	}

	out, collapsed := dedupeByGameID(hands)
	if collapsed != 2 {
		t.Errorf("collapsed = %d, 期望 2", collapsed)
	}
	if len(out) != 3 {
		t.Fatalf("收敛后行数 = %d, 期望 3", len(out))
	}

	// 首次出现的位置保序；保留末次出现的内容（与逐行upsert的终态一致）
	wantIDs := []string{"123", "124", "125"}
	for i, h := range out {
		if h.GameID != wantIDs[i] {
			t.Errorf("位置[%d] = %s, 期望 %s", i, h.GameID, wantIDs[i])
		}
	}
	if out[0].RawText != "第三份" {
		t.Errorf("重复身份应保留末次内容: %q", out[0].RawText)
	}

	// 批内无重复时原样通过
	unique := []*model.RawHand{{GameID: "1"}, {GameID: "2"}}
	out, collapsed = dedupeByGameID(unique)
	if len(out) != 2 || collapsed != 0 {
		t.Errorf("无重复批: len=%d collapsed=%d", len(out), collapsed)
	}

	out, collapsed = dedupeByGameID(nil)
	if len(out) != 0 || collapsed != 0 {
		t.Errorf("空批: len=%d collapsed=%d", len(out), collapsed)
	}
}
