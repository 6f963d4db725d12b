package saver_test

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/shouni/stego-image-kit/pkg/domain"
	"github.com/shouni/stego-image-kit/pkg/saver"
	"github.com/shouni/stego-image-kit/pkg/source"
)

func Example() {
	dir, err := os.MkdirTemp("", "stego-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	carrier := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			carrier.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	ctx := context.Background()
	out := filepath.Join(dir, "out.png")
	s := saver.New(saver.WithAtomicWrite(true))
	if err := s.SaveImageFile(ctx, out, domain.NewStegoImage(carrier, "carrier")); err != nil {
		fmt.Println(err)
		return
	}

	loaded, err := source.NewLoader(nil, nil, nil, 0).Load(ctx, out)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(loaded.Bounds().Dx(), loaded.Bounds().Dy())
	// Output: 2 2
}
