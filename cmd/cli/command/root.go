package command

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ordergw/internal/telegram"
)

// NewRootCommand ルートコマンドを作る
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ordergw-cli",
		Short: "注射オーダ電文の検査用CLI",
		Long:  `注射オーダ電文ファイルをサーバを介さずに解析し、結果を確認するためのCLI。`,
	}

	rootCmd.AddCommand(NewDecodeCommand())

	return rootCmd
}

// NewDecodeCommand decode サブコマンドを作る
func NewDecodeCommand() *cobra.Command {
	var encodingName string

	cmd := &cobra.Command{
		Use:   "decode <電文ファイル>",
		Short: "電文ファイルを解析して JSON で出力する",
		Long:  `固定長の注射オーダ電文ファイルを解析し、正規スキーマの JSON を標準出力へ書き出す。`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := telegram.EncodingByName(encodingName)
			if err != nil {
				return err
			}
			parser := telegram.NewParser(telegram.WithEncoding(enc))

			t, err := parser.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("電文の解析に失敗しました: %w", err)
			}

			// 残バイトは解析失敗ではないため警告として標準エラーへ出す
			if t.TrailingBytes > 0 {
				fmt.Fprintf(os.Stderr, "警告: 電文末尾に %d バイトの未解析データが残っています\n", t.TrailingBytes)
			}

			out, err := json.MarshalIndent(t, "", "  ")
			if err != nil {
				return fmt.Errorf("JSONへの変換に失敗しました: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&encodingName, "encoding", "cp932", "テキストフィールドのエンコーディング (cp932, euc-jp, iso-2022-jp)")

	return cmd
}
