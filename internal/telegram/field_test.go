package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
)

func sjisBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err, "Shift-JISへのエンコードに失敗")
	return b
}

func TestFieldReaderText(t *testing.T) {
	// "ABC" + 空白パディング
	r := newFieldReader([]byte("ABC       "), japanese.ShiftJIS)
	got := r.text(10)
	require.NoError(t, r.err)
	require.NotNil(t, got)
	assert.Equal(t, "ABC", *got)
}

func TestFieldReaderBlankIsNull(t *testing.T) {
	// 全て空白のフィールドは null 標識 (nil)
	r := newFieldReader([]byte("          "), japanese.ShiftJIS)
	assert.Nil(t, r.text(10))
	require.NoError(t, r.err)
}

func TestFieldReaderFullWidthText(t *testing.T) {
	// 全角文字・半角カナは無変換で保持。内側の全角スペースも保持される
	raw := sjisBytes(t, "山田　太郎")
	raw = append(raw, []byte("    ")...) // パディング
	r := newFieldReader(raw, japanese.ShiftJIS)
	got := r.text(len(raw))
	require.NoError(t, r.err)
	require.NotNil(t, got)
	assert.Equal(t, "山田　太郎", *got)

	raw = sjisBytes(t, " ﾔﾏﾀﾞ ﾀﾛｳ ")
	r = newFieldReader(raw, japanese.ShiftJIS)
	got = r.text(len(raw))
	require.NotNil(t, got)
	assert.Equal(t, "ﾔﾏﾀﾞ ﾀﾛｳ", *got, "前後の空白のみ除去される")
}

func TestFieldReaderFullWidthPaddingIsNull(t *testing.T) {
	// 全角スペースのみのフィールドも空白埋めとして null になる
	raw := sjisBytes(t, "　　　")
	r := newFieldReader(raw, japanese.ShiftJIS)
	assert.Nil(t, r.text(len(raw)))
	require.NoError(t, r.err)
}

func TestFieldReaderInvalidSequenceReplaced(t *testing.T) {
	// 不正なShift-JISバイト列は失敗せず置換文字になる
	r := newFieldReader([]byte{0x80, 'A'}, japanese.ShiftJIS)
	got := r.text(2)
	require.NoError(t, r.err)
	require.NotNil(t, got)
	assert.Contains(t, *got, "�")
}

func TestFieldReaderFloat(t *testing.T) {
	r := newFieldReader([]byte("00000170.50"), japanese.ShiftJIS)
	assert.Equal(t, 170.5, r.float(11))
	require.NoError(t, r.err)

	// 空白は 0 に読み替える (計測値のポリシー)
	r = newFieldReader([]byte("           "), japanese.ShiftJIS)
	assert.Equal(t, 0.0, r.float(11))
	require.NoError(t, r.err)

	// 数値以外のゴミは解析エラー
	r = newFieldReader([]byte("12x4       "), japanese.ShiftJIS)
	r.float(11)
	assert.Error(t, r.err)
}

func TestFieldReaderCount(t *testing.T) {
	r := newFieldReader([]byte("003"), japanese.ShiftJIS)
	assert.Equal(t, 3, r.count(3))
	require.NoError(t, r.err)

	r = newFieldReader([]byte("   "), japanese.ShiftJIS)
	assert.Equal(t, 0, r.count(3))
	require.NoError(t, r.err)
}

func TestFieldReaderStickyError(t *testing.T) {
	// 一度エラーになった後の読み取りはすべてゼロ値を返し、最初のエラーを保持する
	r := newFieldReader([]byte("ab"), japanese.ShiftJIS)
	assert.Nil(t, r.text(5))
	firstErr := r.err
	require.Error(t, firstErr)

	assert.Nil(t, r.text(1))
	assert.Equal(t, 0.0, r.float(11))
	assert.Equal(t, 0, r.count(3))
	assert.Same(t, firstErr.(*UnderrunError), r.err.(*UnderrunError))
}
