package avatar

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"github.com/phonebook-app/accounts-service/internal/domain"
	"github.com/phonebook-app/accounts-service/internal/logger"
)

const (
	// SideLen is the edge of the square every avatar is normalized to.
	SideLen = 250
	// JPEGQuality is the fixed re-encode quality.
	JPEGQuality = 60
)

// AllowedMagicBytes defines magic bytes for accepted image types.
var AllowedMagicBytes = map[string][]byte{
	"image/jpeg": {0xFF, 0xD8, 0xFF},
	"image/png":  {0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
	"image/webp": {0x52, 0x49, 0x46, 0x46}, // RIFF header (WebP starts with RIFF....WEBP)
}

// DetectType detects the actual image type from magic bytes.
func DetectType(data []byte) (string, error) {
	if len(data) < 12 {
		return "", fmt.Errorf("data too short to detect type")
	}

	if bytes.HasPrefix(data, AllowedMagicBytes["image/jpeg"]) {
		return "image/jpeg", nil
	}
	if bytes.HasPrefix(data, AllowedMagicBytes["image/png"]) {
		return "image/png", nil
	}
	if bytes.HasPrefix(data, AllowedMagicBytes["image/webp"]) && string(data[8:12]) == "WEBP" {
		return "image/webp", nil
	}

	return "", fmt.Errorf("unsupported image type")
}

// Processor normalizes uploaded images into fixed-size JPEG avatars on the
// local filesystem. The target filename is derived solely from the owning
// account, so repeated uploads overwrite the previous avatar.
type Processor struct {
	dir       string // filesystem directory for processed files
	publicDir string // URL prefix the files are served under
}

func NewProcessor(dir, publicDir string) *Processor {
	return &Processor{dir: dir, publicDir: publicDir}
}

// Process decodes the image at srcPath, cover-fits it to a SideLen square,
// re-encodes it as JPEG and stores it as <accountID>.jpg. The temporary
// source file is removed afterwards; a cleanup failure is logged and never
// masks the processing result.
func (p *Processor) Process(ctx context.Context, srcPath, accountID string) (string, error) {
	defer func() {
		if err := os.Remove(srcPath); err != nil && !os.IsNotExist(err) {
			l := logger.WithCtx(ctx)
			l.Warn().Err(err).Str("path", srcPath).Msg("temp upload cleanup failed")
		}
	}()

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", domain.ErrAvatarProcessing(err)
	}

	img, err := decode(data)
	if err != nil {
		return "", domain.ErrAvatarProcessing(err)
	}

	square := coverFit(img, SideLen)

	name := accountID + ".jpg"
	dstPath := filepath.Join(p.dir, name)

	f, err := os.Create(dstPath)
	if err != nil {
		return "", domain.ErrAvatarProcessing(err)
	}

	if err := jpeg.Encode(f, square, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		_ = f.Close()
		return "", domain.ErrAvatarProcessing(err)
	}
	if err := f.Close(); err != nil {
		return "", domain.ErrAvatarProcessing(err)
	}

	return p.publicDir + "/" + name, nil
}

func decode(data []byte) (image.Image, error) {
	mimeType, err := DetectType(data)
	if err != nil {
		return nil, err
	}

	reader := bytes.NewReader(data)
	switch mimeType {
	case "image/jpeg":
		return jpeg.Decode(reader)
	case "image/png":
		return png.Decode(reader)
	case "image/webp":
		return webp.Decode(reader)
	default:
		return nil, fmt.Errorf("unsupported image type: %s", mimeType)
	}
}

// coverFit scales the image to fill a side×side square and crops the excess
// around the center. Small images are scaled up; the output shape is always
// exactly side×side.
func coverFit(img image.Image, side int) image.Image {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	// Crop the source to a centered square first, then scale.
	var cropRect image.Rectangle
	if srcW > srcH {
		x := bounds.Min.X + (srcW-srcH)/2
		cropRect = image.Rect(x, bounds.Min.Y, x+srcH, bounds.Min.Y+srcH)
	} else {
		y := bounds.Min.Y + (srcH-srcW)/2
		cropRect = image.Rect(bounds.Min.X, y, bounds.Min.X+srcW, y+srcW)
	}

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, cropRect, draw.Src, nil)
	return dst
}
