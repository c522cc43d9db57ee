// Package prompt builds the model extraction request text.
package prompt

import (
	"fmt"
	"strings"
	"time"
)

// Context carries optional source metadata embedded into the prompt.
// Now is the reference instant stated as the current date.
type Context struct {
	Subject string
	From    string
	Now     time.Time
}

// Builder renders extraction prompts with a fixed output schema.
type Builder struct{}

// NewBuilder constructs a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

var weekdays = [...]string{"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"}

// longDate renders t as a Japanese long-form date with weekday.
func longDate(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日%s", t.Year(), int(t.Month()), t.Day(), weekdays[t.Weekday()])
}

// Build produces the single prompt string sent to the model. The prompt
// fixes the output schema (an events array plus a summary string), the
// date and time formats, and requires relative dates to be resolved
// before output.
func (b *Builder) Build(text string, ectx Context) string {
	var sb strings.Builder

	sb.WriteString("あなたは予定管理アシスタントです。以下のテキストから予定・イベントに関する情報を抽出し、構造化されたJSON形式で出力してください。\n\n")
	fmt.Fprintf(&sb, "現在の日付: %s\n\n", longDate(ectx.Now))

	sb.WriteString("テキスト:\n\"\"\"\n")
	sb.WriteString(text)
	sb.WriteString("\n\"\"\"\n")

	if ectx.Subject != "" {
		fmt.Fprintf(&sb, "\nメールの件名: %s\n", ectx.Subject)
	}
	if ectx.From != "" {
		fmt.Fprintf(&sb, "送信者: %s\n", ectx.From)
	}

	sb.WriteString(`
以下の情報を抽出してください：
1. イベントのタイトル（明確に記載されていない場合は内容から推測）
2. 日付（相対的な表現の場合は具体的な日付に変換）
3. 開始時間
4. 終了時間
5. 場所（物理的な場所またはオンライン）
6. 会議URL（Zoom、Teams、Meet、Webexなど）
7. 参加者（メールアドレスや名前）
8. 議題や説明
9. 重要度（高/中/低）

複数の予定が含まれている場合は、すべて抽出してください。

出力形式（JSON）:
{
  "events": [
    {
      "title": "イベントタイトル",
      "date": "YYYY年MM月DD日",
      "startTime": "HH:mm",
      "endTime": "HH:mm",
      "location": "場所",
      "meetingUrl": "URL",
      "attendees": ["参加者1", "参加者2"],
      "description": "説明",
      "importance": "high/medium/low",
      "confidence": 0.95
    }
  ],
  "summary": "抽出内容の要約"
}

注意事項：
- 日付は必ず「YYYY年MM月DD日」形式で出力
- 時間は24時間形式（HH:mm）で出力
- 不明な項目はnullとして出力
- confidenceは抽出の確信度（0-1）
- 「今日」「明日」「来週」などは具体的な日付に変換
- 曖昧な情報には低いconfidenceスコアを設定

JSONのみを出力し、他の説明は不要です。`)

	return sb.String()
}
