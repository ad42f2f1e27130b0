// Package telegram は注射オーダ依頼電文(固定長ヘッダー+可変長内容部)の
// バイト列を構造化レコードにデコードする。
//
// デコードは入力バッファのみに依存する純関数であり、同一バッファに対して常に
// 同一の結果を返す。Parser 自体は状態を持たないため、独立したバッファへの
// 並行呼び出しは同期なしで安全である。
package telegram

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// Parser は電文デコーダ。テキストフィールドのエンコーディングは構築時に固定する。
type Parser struct {
	enc encoding.Encoding
}

// Option は Parser の構築オプション
type Option func(*Parser)

// WithEncoding はテキストフィールドのレガシーエンコーディングを差し替える
func WithEncoding(enc encoding.Encoding) Option {
	return func(p *Parser) {
		p.enc = enc
	}
}

// NewParser は Parser を生成する。既定のエンコーディングは Shift-JIS (CP932)。
func NewParser(opts ...Option) *Parser {
	p := &Parser{enc: japanese.ShiftJIS}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EncodingByName は設定ファイル上のエンコーディング名を解決する
func EncodingByName(name string) (encoding.Encoding, error) {
	switch name {
	case "", "cp932", "shift_jis", "sjis", "windows-31j":
		return japanese.ShiftJIS, nil
	case "euc-jp", "eucjp":
		return japanese.EUCJP, nil
	case "iso-2022-jp", "jis":
		return japanese.ISO2022JP, nil
	default:
		return nil, fmt.Errorf("未対応のエンコーディングです: %q", name)
	}
}

// Parse はバッファ全体を1パスで解析し、電文ツリーを返す。
//
// 失敗系:
//   - 空バッファ          → ErrEmptyInput
//   - ヘッダー識別不一致  → *HeaderValidationError (内容部は解析しない)
//   - バッファ不足        → *UnderrunError を包んだエラー (部分結果は返さない)
//
// 構造解析後に末尾へバイトが残っていても失敗にはせず、
// Telegram.TrailingBytes に記録する。
func (p *Parser) Parse(data []byte) (*Telegram, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	r := newFieldReader(data, p.enc)

	// 1. 共通部
	common := readCommonHeader(r)
	if r.err != nil {
		return nil, fmt.Errorf("共通部の解析に失敗しました: %w", r.err)
	}

	// 2. 電文形式の検証。不一致なら内容部には一切手を付けない
	if err := validateHeader(common); err != nil {
		return nil, err
	}

	// 3. 内容部
	content, err := readContent(r)
	if err != nil {
		return nil, err
	}

	// 4. 終端確認。残バイトは仕様上許容されるため警告扱い
	return &Telegram{
		Common:        common,
		Content:       content,
		TrailingBytes: r.cur.remaining(),
	}, nil
}

// ParseFile はファイル全体を読み込んでから Parse を実行する。
// 部分読み・ストリーミングはサポートしない。
func (p *Parser) ParseFile(path string) (*Telegram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("電文ファイルの読み込みに失敗しました: %w", err)
	}
	return p.Parse(data)
}
