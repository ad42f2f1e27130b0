package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// fieldReader は固定長フィールドの読み取り・デコードをまとめたもの。
// エラーは内部に保持し(sticky)、発生後の読み取りはすべてゼロ値を返す。
// これによりセクションビルダーを宣言的なフィールド読み取りの列として書ける。
type fieldReader struct {
	cur *cursor
	dec *encoding.Decoder
	err error
}

func newFieldReader(data []byte, enc encoding.Encoding) *fieldReader {
	return &fieldReader{
		cur: newCursor(data),
		dec: enc.NewDecoder(),
	}
}

// decode は n バイトを消費し、レガシーエンコーディングでデコードして前後の
// 空白(全角スペース U+3000 を含む)を除去した文字列を返す。
// 全て空白埋めのフィールドは ok=false となる。
func (r *fieldReader) decode(n int) (s string, ok bool) {
	if r.err != nil {
		return "", false
	}
	raw, err := r.cur.advance(n)
	if err != nil {
		r.err = err
		return "", false
	}
	// 不正なバイト列は置換文字(U+FFFD)に置き換えられるためエラーにはならない
	decoded, _, _ := transform.Bytes(r.dec, raw)
	s = strings.TrimSpace(string(decoded))
	return s, s != ""
}

// text は n バイトをテキストとして読む。空白埋めは null 標識(nil)になる。
func (r *fieldReader) text(n int) *string {
	s, ok := r.decode(n)
	if !ok {
		return nil
	}
	return &s
}

// float は n バイトを実数として読む。空白埋めは 0 とみなす(身長・体重等の計測値用)。
func (r *fieldReader) float(n int) float64 {
	s, ok := r.decode(n)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.setNumericErr(s, n)
		return 0
	}
	return v
}

// count は n バイトを非負整数として読む。空白埋めは 0 とみなす(件数・版数用)。
func (r *fieldReader) count(n int) int {
	s, ok := r.decode(n)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		r.setNumericErr(s, n)
		return 0
	}
	return v
}

func (r *fieldReader) setNumericErr(s string, width int) {
	if r.err == nil {
		r.err = fmt.Errorf("数値フィールドの解析に失敗しました: %q (オフセット %d, 長さ %d)",
			s, r.cur.offset()-width, width)
	}
}
