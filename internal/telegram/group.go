package telegram

import "fmt"

// readRepeating は件数前置の繰り返しグループを読む。
// まず countWidth バイトの件数フィールド(空白は0扱い)を読み、その回数だけ
// build で固定長サブレコードを構築する。結果のリスト長は必ず件数と一致する。
// 負の件数は 0 件として扱う。
// 残りバッファ長の事前チェックは行わず、不足は要素構築中の UnderrunError として
// 表面化し、解析全体を中断させる。
func readRepeating[T any](r *fieldReader, countWidth int, name string, build func(*fieldReader) T) ([]T, int) {
	count := r.count(countWidth)
	if r.err != nil {
		return nil, 0
	}
	if count < 0 {
		count = 0
	}
	out := make([]T, 0, count)
	for i := 0; i < count; i++ {
		el := build(r)
		if r.err != nil {
			r.err = fmt.Errorf("%s の %d/%d 件目の解析に失敗しました: %w", name, i+1, count, r.err)
			return nil, 0
		}
		out = append(out, el)
	}
	return out, count
}
