package saver

import (
	"errors"
	"fmt"
)

var (
	// ErrNilSource は保存対象の BitmapSource が nil の場合に返されます。
	ErrNilSource = errors.New("bitmap source is required")
	// ErrNilImage は BitmapSource がビットマップを返さなかった場合に返されます。
	ErrNilImage = errors.New("bitmap source returned nil image")
	// ErrEmptyPath は保存先パスが空文字列の場合に返されます。
	ErrEmptyPath = errors.New("destination path is required")
)

// 失敗した処理段階を表す Op の値
const (
	OpMkdir  = "mkdir"
	OpCreate = "create"
	OpEncode = "encode"
	OpClose  = "close"
	OpCommit = "commit" // 一時ファイルの fsync, close, rename
)

// SaveError は PNG 保存の失敗を、失敗した段階と保存先パスとともに保持します。
type SaveError struct {
	Op   string
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}
