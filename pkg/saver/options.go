package saver

import (
	"image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/shouni/stego-image-kit/pkg/imgutil"
)

const (
	defaultFileMode fs.FileMode = 0o644
	defaultDirMode  fs.FileMode = 0o755
)

type config struct {
	level       png.CompressionLevel
	mode        fs.FileMode
	atomic      bool
	createDirs  bool
	logger      *slog.Logger
	diagnostics io.Writer
}

func defaultConfig() config {
	return config{
		level:       imgutil.DefaultCompressionLevel,
		mode:        defaultFileMode,
		logger:      slog.Default(),
		diagnostics: os.Stdout,
	}
}

// Option は FileSaver の挙動を変更します。
type Option func(*config)

// WithCompressionLevel は PNG の圧縮レベルを指定します。
func WithCompressionLevel(level png.CompressionLevel) Option {
	return func(c *config) { c.level = level }
}

// WithFileMode は新規作成するファイルのパーミッションを指定します。
func WithFileMode(mode fs.FileMode) Option {
	return func(c *config) { c.mode = mode }
}

// WithAtomicWrite を有効にすると、同じディレクトリの一時ファイルへ書き込んでから rename します。
// 失敗時に既存ファイルが壊れた状態で残ることはありません。
func WithAtomicWrite(enabled bool) Option {
	return func(c *config) { c.atomic = enabled }
}

// WithCreateDirs を有効にすると、存在しない親ディレクトリを作成します。
func WithCreateDirs(enabled bool) Option {
	return func(c *config) { c.createDirs = enabled }
}

// WithLogger は構造化ログの出力先を指定します。nil は無視されます。
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDiagnosticWriter は SaveImageFileBestEffort が "Error: " 行を書き出す先を指定します。
func WithDiagnosticWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.diagnostics = w
		}
	}
}
