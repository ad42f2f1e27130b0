package telegram

import (
	"errors"
	"testing"
)

func TestCursorAdvance(t *testing.T) {
	c := newCursor([]byte("abcdef"))

	b, err := c.advance(4)
	if err != nil {
		t.Fatalf("advance(4) でエラー: %v", err)
	}
	if string(b) != "abcd" {
		t.Errorf("期待値 \"abcd\", 実際 %q", b)
	}
	if c.offset() != 4 {
		t.Errorf("オフセットの期待値 4, 実際 %d", c.offset())
	}
	if c.remaining() != 2 {
		t.Errorf("残りバイト数の期待値 2, 実際 %d", c.remaining())
	}
}

func TestCursorUnderrun(t *testing.T) {
	c := newCursor([]byte("abc"))
	if _, err := c.advance(2); err != nil {
		t.Fatalf("advance(2) でエラー: %v", err)
	}

	_, err := c.advance(5)
	var ue *UnderrunError
	if !errors.As(err, &ue) {
		t.Fatalf("UnderrunError を期待しましたが %T でした", err)
	}
	if ue.Requested != 5 || ue.Available != 1 || ue.Offset != 2 {
		t.Errorf("UnderrunError の内容が不正: %+v", ue)
	}

	// 失敗した読み取りではオフセットは動かない
	if c.offset() != 2 {
		t.Errorf("失敗後のオフセットの期待値 2, 実際 %d", c.offset())
	}
}

func TestCursorExactConsumption(t *testing.T) {
	c := newCursor([]byte("abcd"))
	if _, err := c.advance(4); err != nil {
		t.Fatalf("advance(4) でエラー: %v", err)
	}
	if c.remaining() != 0 {
		t.Errorf("残りバイト数の期待値 0, 実際 %d", c.remaining())
	}
	// 0バイト読み取りは終端でも成功する
	if _, err := c.advance(0); err != nil {
		t.Errorf("advance(0) でエラー: %v", err)
	}
}
