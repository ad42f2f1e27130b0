package telegram

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput 入力バッファが0バイトの場合に返す
var ErrEmptyInput = errors.New("電文が空です")

// UnderrunError はカーソルが残りバイト数を超えて読み取ろうとしたことを表す。
// 固定長フィールドや繰り返しグループの要素構築中に発生し、解析全体を中断させる。
type UnderrunError struct {
	Requested int // 要求バイト数
	Available int // 残りバイト数
	Offset    int // 発生時のオフセット
}

func (e *UnderrunError) Error() string {
	return fmt.Sprintf("データが不足しています: %d バイトを読み取ろうとしましたが、オフセット %d で残り %d バイトしかありません",
		e.Requested, e.Offset, e.Available)
}

// IsTruncated は err が電文の切り詰め(バッファ不足)に起因するかを判定する
func IsTruncated(err error) bool {
	var ue *UnderrunError
	return errors.As(err, &ue)
}

// FieldMismatch は共通部の必須識別項目1件の不一致を表す
type FieldMismatch struct {
	Field string  // フィールド名
	Want  string  // 期待値
	Got   *string // 実際の値 (空白フィールドは nil)
}

func (m FieldMismatch) String() string {
	got := "(空白)"
	if m.Got != nil {
		got = *m.Got
	}
	return fmt.Sprintf("%s: 期待値 %q, 実際 %q", m.Field, m.Want, got)
}

// HeaderValidationError は共通部ヘッダーの検証失敗を表す。
// 発生した場合、内容部の解析は一切行われない。
type HeaderValidationError struct {
	Mismatches []FieldMismatch
}

func (e *HeaderValidationError) Error() string {
	parts := make([]string, 0, len(e.Mismatches))
	for _, m := range e.Mismatches {
		parts = append(parts, m.String())
	}
	return "電文ヘッダーの検証に失敗しました: " + strings.Join(parts, "; ")
}
