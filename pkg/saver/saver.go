package saver

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/shouni/stego-image-kit/pkg/domain"
	"github.com/shouni/stego-image-kit/pkg/imgutil"
)

// FileSaver はビットマップを PNG ファイルとして保存するコンポーネントです。
type FileSaver struct {
	cfg config
}

// New はオプションを適用して FileSaver を生成します。
func New(opts ...Option) *FileSaver {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FileSaver{cfg: cfg}
}

// SaveImageFile は src のビットマップを filename に PNG として書き出します。
// 既存ファイルは上書きされます。失敗時は *SaveError（または前提条件違反のセンチネルエラー）を返します。
func (s *FileSaver) SaveImageFile(ctx context.Context, filename string, src domain.BitmapSource) error {
	img, err := checkPreconditions(filename, src)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.cfg.createDirs {
		if err := os.MkdirAll(filepath.Dir(filename), defaultDirMode); err != nil {
			return &SaveError{Op: OpMkdir, Path: filename, Err: err}
		}
	}

	if s.cfg.atomic {
		err = s.writeAtomic(ctx, filename, img)
	} else {
		err = s.writeDirect(ctx, filename, img)
	}
	if err != nil {
		return err
	}

	b := img.Bounds()
	s.cfg.logger.DebugContext(ctx, "PNGファイルを保存しました",
		"path", filename, "width", b.Dx(), "height", b.Dy(), "atomic", s.cfg.atomic)
	return nil
}

// SaveImageFileBestEffort は失敗を呼び出し元へ返さず、診断出力に "Error: " 行を1行書き出すだけの保存処理です。
func (s *FileSaver) SaveImageFileBestEffort(ctx context.Context, filename string, src domain.BitmapSource) {
	err := s.SaveImageFile(ctx, filename, src)
	if err == nil {
		return
	}
	s.cfg.logger.WarnContext(ctx, "PNGファイルの保存に失敗しました。処理は続行します", "path", filename, "error", err)
	// 診断行の書き込み失敗はこれ以上報告する先がない
	_, _ = fmt.Fprintf(s.cfg.diagnostics, "Error: %v\n", err)
}

// SaveBytes はエンコード済みの画像データ（PNG, JPEG, GIF, BMP, TIFF, WebP）をデコードし、PNG として保存します。
func (s *FileSaver) SaveBytes(ctx context.Context, filename string, data []byte) error {
	img, _, err := imgutil.DecodeImage(data)
	if err != nil {
		return fmt.Errorf("保存対象の画像を読み込めませんでした: %w", err)
	}
	return s.SaveImageFile(ctx, filename, domain.NewStegoImage(img, filename))
}

func checkPreconditions(filename string, src domain.BitmapSource) (image.Image, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if filename == "" {
		return nil, ErrEmptyPath
	}
	img := src.Image()
	if img == nil {
		return nil, ErrNilImage
	}
	return img, nil
}

// writeDirect は保存先を作成（または切り詰め）して直接エンコードします。
func (s *FileSaver) writeDirect(ctx context.Context, filename string, img image.Image) (err error) {
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, s.cfg.mode)
	if err != nil {
		return &SaveError{Op: OpCreate, Path: filename, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, &SaveError{Op: OpClose, Path: filename, Err: cerr})
		}
	}()

	if err := imgutil.EncodePNG(&ctxWriter{ctx: ctx, w: f}, img, s.cfg.level); err != nil {
		return &SaveError{Op: OpEncode, Path: filename, Err: err}
	}
	return nil
}

// writeAtomic は保存先と同じディレクトリの一時ファイルに書き込み、fsync 後に保存先へ rename します。
// パーミッションには umask が適用されるため、直接書き込みと同じ結果になります。
func (s *FileSaver) writeAtomic(ctx context.Context, filename string, img image.Image) (err error) {
	pf, err := renameio.NewPendingFile(filename,
		renameio.WithTempDir(filepath.Dir(filename)),
		renameio.WithPermissions(s.cfg.mode),
	)
	if err != nil {
		return &SaveError{Op: OpCreate, Path: filename, Err: err}
	}
	// CloseAtomicallyReplace が成功していれば Cleanup は何もしない
	defer func() {
		if cerr := pf.Cleanup(); cerr != nil {
			s.cfg.logger.WarnContext(ctx, "一時ファイルの削除に失敗しました", "path", pf.Name(), "error", cerr)
		}
	}()

	if err := imgutil.EncodePNG(&ctxWriter{ctx: ctx, w: pf}, img, s.cfg.level); err != nil {
		return &SaveError{Op: OpEncode, Path: filename, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return &SaveError{Op: OpCommit, Path: filename, Err: err}
	}
	return nil
}
