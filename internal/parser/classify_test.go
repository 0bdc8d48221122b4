package parser

import (
	"testing"

	"HandSync/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		content string
		ext     string
		want    model.Dialect
	}{
		{
			name:    "session根",
			content: `<session sessioncode="s1"><general/><game gamecode="1"/></session>`,
			want:    model.DialectSessionXML,
		},
		{
			name:    "game根",
			content: `<game gamecode="77"><general/></game>`,
			want:    model.DialectGameXML,
		},
		{
			name:    "已包装的hand根",
			content: `<hand gamecode="5"><game gamecode="5"/></hand>`,
			want:    model.DialectHandXML,
		},
		{
			name:    "前导空白后的XML",
			content: "\n\n  <session sessioncode=\"s2\"></session>",
			want:    model.DialectSessionXML,
		},
		{
			name:    "xml扩展名提示",
			content: `<session sessioncode="s3"></session>`,
			ext:     ".xml",
			want:    model.DialectSessionXML,
		},
		{
			name:    "未知XML根回落行式探测后仍无法识别",
			content: `<foo>bar</foo>`,
			want:    model.DialectUnrecognized,
		},
		{
			name:    "经典TXT",
			content: "GAME #123 Texas Hold'em\nblinds 1/2\nsome body\n",
			want:    model.DialectClassicTxt,
		},
		{
			name: "PokerTracker座位行",
			content: "GAME #456 Version:1.2.3\nTable Size 3\n" +
				"Seat 1: Alice (€5.00 in chips) DEALER\nSeat 2: Bob (€4.20 in chips)\n",
			want: model.DialectPokerTracker,
		},
		{
			name:    "首个非空行不是GAME头",
			content: "hello world\nGAME #1\n",
			want:    model.DialectUnrecognized,
		},
		{
			name:    "空输入",
			content: "   \n  ",
			want:    model.DialectUnrecognized,
		},
		{
			name:    "坏掉的XML回落行式探测",
			content: "<session sessioncode=",
			want:    model.DialectUnrecognized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify([]byte(tt.content), tt.ext); got != tt.want {
				t.Errorf("Classify() = %s, 期望 %s", got, tt.want)
			}
		})
	}
}
