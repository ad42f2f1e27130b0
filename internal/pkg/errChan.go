package pkg

import (
	"context"
)

// context key の衝突を避けるための非公開 key 型
type errChanKey struct{}

// WithErrChan はグローバルエラーチャネルを context に載せる
func WithErrChan(ctx context.Context, errChan chan error) context.Context {
	return context.WithValue(ctx, errChanKey{}, errChan)
}

// ErrChanFromContext は context からエラーチャネルを取り出す
func ErrChanFromContext(ctx context.Context) chan<- error {
	if errChan, ok := ctx.Value(errChanKey{}).(chan error); ok {
		return errChan
	}
	return nil
}
