package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"HandSync/internal/config"
	"HandSync/internal/model"
)

// fakeHandRepo 内存版 HandRepository，按 game_id 去重
type fakeHandRepo struct {
	userID   uint64
	users    map[string]uint64
	hands    map[string]*model.RawHand
	saveErr  error
	fetchSeq [][]*model.RawHand
}

func newFakeHandRepo() *fakeHandRepo {
	return &fakeHandRepo{
		users: map[string]uint64{},
		hands: map[string]*model.RawHand{},
	}
}

func (f *fakeHandRepo) EnsureUser(_ context.Context, username string) (uint64, error) {
	if id, ok := f.users[username]; ok {
		return id, nil
	}
	f.userID++
	f.users[username] = f.userID
	return f.userID, nil
}

func (f *fakeHandRepo) GetUser(_ context.Context, username string) (uint64, error) {
	id, ok := f.users[username]
	if !ok {
		return 0, errors.New("用户不存在")
	}
	return id, nil
}

func (f *fakeHandRepo) SaveRawHands(_ context.Context, hands []*model.RawHand) (int, int, error) {
	if f.saveErr != nil {
		return 0, 0, f.saveErr
	}
	inserted, duplicates := 0, 0
	for _, h := range hands {
		if _, ok := f.hands[h.GameID]; ok {
			duplicates++
		} else {
			inserted++
		}
		f.hands[h.GameID] = h
	}
	return inserted, duplicates, nil
}

func (f *fakeHandRepo) FetchUnparsed(_ context.Context, _ uint64, limit int) ([]*model.RawHand, error) {
	if len(f.fetchSeq) == 0 {
		return nil, nil
	}
	batch := f.fetchSeq[0]
	f.fetchSeq = f.fetchSeq[1:]
	if len(batch) > limit {
		batch = batch[:limit]
	}
	return batch, nil
}

func (f *fakeHandRepo) CountUnparsed(_ context.Context, _ uint64) (int64, error) {
	var n int64
	for _, batch := range f.fetchSeq {
		n += int64(len(batch))
	}
	return n, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testConfig() *config.Config {
	return &config.Config{Import: config.ImportConfig{BatchSize: 2, ParseBatchSize: 2}}
}

func TestImportContentClassicTxt(t *testing.T) {
	repo := newFakeHandRepo()
	svc := &ImportService{logger: quietLogger(), repo: repo, cfg: testConfig()}

	content := []byte("GAME #1 x\nDealt to a\nbody\n" +
		"GAME #2 x\nDealt to b\nbody\n" +
		"GAME #3 x\nDealt to c\nbody\n")

	summary, err := svc.ImportContent(context.Background(), "hero", "hands.txt", content)
	if err != nil {
		t.Fatalf("ImportContent: %v", err)
	}
	if summary.Dialect != model.DialectClassicTxt {
		t.Errorf("Dialect = %s", summary.Dialect)
	}
	if summary.HandsFound != 3 || summary.Inserted != 3 || summary.Duplicates != 0 {
		t.Errorf("summary = %+v, 期望 3手全新增", summary)
	}
	if summary.RunID == "" {
		t.Error("RunID 不应为空")
	}

	row := repo.hands["1"]
	if row == nil {
		t.Fatal("game 1 未入库")
	}
	if row.RawTextHash == "" || len(row.RawTextHash) != 64 {
		t.Errorf("内容哈希异常: %q", row.RawTextHash)
	}
	if row.SourceFile != "hands.txt" {
		t.Errorf("SourceFile = %s", row.SourceFile)
	}

	// 重导同一文件：全部计为重复，手数不变
	summary, err = svc.ImportContent(context.Background(), "hero", "hands.txt", content)
	if err != nil {
		t.Fatalf("重导: %v", err)
	}
	if summary.Inserted != 0 || summary.Duplicates != 3 {
		t.Errorf("重导 summary = %+v, 期望全重复", summary)
	}
	if len(repo.hands) != 3 {
		t.Errorf("库中手数 = %d, 期望 3", len(repo.hands))
	}
}

func TestImportContentSessionXML(t *testing.T) {
	repo := newFakeHandRepo()
	svc := &ImportService{logger: quietLogger(), repo: repo, cfg: testConfig()}

	content := []byte(`<session sessioncode="7">
  <general><tablename>T1</tablename></general>
  <game gamecode="10"><round no="1"/></game>
  <game><round no="1"/></game>
</session>`)

	summary, err := svc.ImportContent(context.Background(), "hero", "s.xml", content)
	if err != nil {
		t.Fatalf("ImportContent: %v", err)
	}
	if summary.Dialect != model.DialectSessionXML {
		t.Errorf("Dialect = %s", summary.Dialect)
	}
	if summary.HandsFound != 1 || summary.Skipped != 1 {
		t.Errorf("summary = %+v, 期望 1手入库 1手跳过", summary)
	}
	row := repo.hands["10"]
	if row == nil {
		t.Fatal("game 10 未入库")
	}
	if len(row.SessionMeta) == 0 {
		t.Error("会话元数据应随手冗余入库")
	}
}

// 同一文件里同一 GAME # 出现两次：第二份计为重复、覆盖第一份，
// 文件整体照常导入而不是报错
func TestImportContentDuplicateInOneFile(t *testing.T) {
	repo := newFakeHandRepo()
	svc := &ImportService{logger: quietLogger(), repo: repo, cfg: testConfig()}

	content := []byte("GAME #1 x\nDealt to a\nfirst copy\n" +
		"GAME #1 x\nDealt to a\nsecond copy\n")

	summary, err := svc.ImportContent(context.Background(), "hero", "concat.txt", content)
	if err != nil {
		t.Fatalf("ImportContent: %v", err)
	}
	if summary.HandsFound != 2 || summary.Inserted != 1 || summary.Duplicates != 1 {
		t.Errorf("summary = %+v, 期望 1新增 1重复", summary)
	}
	row := repo.hands["1"]
	if row == nil {
		t.Fatal("game 1 未入库")
	}
	if !strings.Contains(row.RawText, "second copy") {
		t.Errorf("应保留末次出现的内容: %q", row.RawText)
	}
}

func TestImportContentUnrecognized(t *testing.T) {
	svc := &ImportService{logger: quietLogger(), repo: newFakeHandRepo(), cfg: testConfig()}

	_, err := svc.ImportContent(context.Background(), "hero", "junk.dat", []byte("random text\nnothing here\n"))
	if !errors.Is(err, ErrUnrecognizedFormat) {
		t.Errorf("err = %v, 期望 ErrUnrecognizedFormat", err)
	}
}

func TestImportContentEmptyFile(t *testing.T) {
	svc := &ImportService{logger: quietLogger(), repo: newFakeHandRepo(), cfg: testConfig()}

	// 可识别但零手：不报错，空汇总
	summary, err := svc.ImportContent(context.Background(), "hero", "s.xml",
		[]byte(`<session sessioncode="1"><general/></session>`))
	if err != nil {
		t.Fatalf("ImportContent: %v", err)
	}
	if summary.HandsFound != 0 || summary.Inserted != 0 {
		t.Errorf("summary = %+v, 期望零手", summary)
	}
}

func TestImportContentSaveError(t *testing.T) {
	repo := newFakeHandRepo()
	repo.saveErr = errors.New("连接中断")
	svc := &ImportService{logger: quietLogger(), repo: repo, cfg: testConfig()}

	_, err := svc.ImportContent(context.Background(), "hero", "h.txt",
		[]byte("GAME #1 x\nDealt to a\n"))
	if err == nil {
		t.Error("存储失败应向上传播")
	}
}
