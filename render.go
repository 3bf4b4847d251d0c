package tonemap

import (
	"context"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// PixelFunc maps one HDR color to an LDR color.
type PixelFunc func(Color) Color

// Render applies fn to every pixel of src, clamps to [0, 1] and quantizes to 8 bits.
// Rows are processed in parallel, ctx is checked between row chunks.
func Render(ctx context.Context, src *HDRImage, fn PixelFunc, opts ...func(o *Options)) (*image.NRGBA, error) {
	opt, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return render(ctx, src, fn, &opt)
}

func render(ctx context.Context, src *HDRImage, fn PixelFunc, opt *Options) (*image.NRGBA, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}

	var (
		toBT709 ColorMatrix
		convert = opt.Gamut != GamutBT709
		quant   = Color.Bytes
	)
	if convert {
		toBT709 = opt.Gamut.ToBT709()
	}
	if opt.Round {
		quant = Color.RoundBytes
	}

	dst := image.NewNRGBA(image.Rect(0, 0, src.W, src.H))
	err := parallelFor(ctx, src.H, opt.Workers, func(start, end int) {
		for y := start; y < end; y++ {
			in := src.Pix[y*src.W*3 : (y+1)*src.W*3]
			out := dst.Pix[y*dst.Stride : y*dst.Stride+src.W*4]
			for x := 0; x < src.W; x++ {
				c := Color{R: in[x*3], G: in[x*3+1], B: in[x*3+2]}
				if convert {
					c = toBT709.Apply(c)
				}
				c = fn(c).Clamp(0, 1)
				if opt.SRGB {
					c = EncodeSRGB(c)
				}
				out[x*4], out[x*4+1], out[x*4+2] = quant(c)
				out[x*4+3] = 0xff
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// parallelFor splits [0, total) into chunks and runs fn on them concurrently.
func parallelFor(ctx context.Context, total, workers int, fn func(start, end int)) error {
	if total <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > total {
		workers = total
	}
	if workers == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(0, total)
		return nil
	}

	// Four chunks per worker.
	chunks := workers * 4
	if chunks > total {
		chunks = total
	}
	step := (total + chunks - 1) / chunks

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < total; start += step {
		start := start
		end := start + step
		if end > total {
			end = total
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(start, end)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
