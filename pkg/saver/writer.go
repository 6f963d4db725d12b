package saver

import (
	"context"
	"io"
)

// ctxWriter は書き込みのたびに ctx を確認し、キャンセル後のエンコードを打ち切ります。
type ctxWriter struct {
	ctx context.Context
	w   io.Writer
}

func (c *ctxWriter) Write(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.w.Write(p)
}
