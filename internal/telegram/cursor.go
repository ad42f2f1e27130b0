package telegram

// cursor は不変バッファ上の逐次読み取りカーソル。
// 1回の解析呼び出しにつき1つ生成され、オフセットは単調増加する。
type cursor struct {
	data []byte
	off  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

// advance は次の n バイトを返しオフセットを進める。
// 残りが n バイト未満の場合は *UnderrunError を返し、オフセットは動かさない。
func (c *cursor) advance(n int) ([]byte, error) {
	if c.off+n > len(c.data) {
		return nil, &UnderrunError{
			Requested: n,
			Available: len(c.data) - c.off,
			Offset:    c.off,
		}
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

// remaining は未消費のバイト数を返す
func (c *cursor) remaining() int {
	return len(c.data) - c.off
}

// offset は現在のオフセットを返す
func (c *cursor) offset() int {
	return c.off
}
