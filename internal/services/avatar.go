package services

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	domainagg "github.com/yungbote/places-backend/internal/domain/aggregates"
	"github.com/yungbote/places-backend/internal/platform/logger"
)

const avatarSize = 256

// defaultAvatarColors is the background palette for generated avatars.
var defaultAvatarColors = []color.NRGBA{
	{R: 0x2E, G: 0x86, B: 0xAB, A: 0xFF},
	{R: 0xF2, G: 0x6B, B: 0x38, A: 0xFF},
	{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF},
	{R: 0x7E, G: 0x57, B: 0xC2, A: 0xFF},
	{R: 0xEF, G: 0x53, B: 0x50, A: 0xFF},
	{R: 0x26, G: 0xA6, B: 0x9A, A: 0xFF},
	{R: 0x5C, G: 0x6B, B: 0xC0, A: 0xFF},
	{R: 0x8D, G: 0x6E, B: 0x63, A: 0xFF},
}

// AvatarService renders a deterministic initials avatar for users who
// sign up without providing an image.
type AvatarService interface {
	Render(name string) (bytes.Buffer, error)
}

type avatarService struct {
	log      *logger.Logger
	bgColors []color.NRGBA
	fontFace font.Face
}

// NewAvatarService loads the optional AVATAR_FONT TTF. Without a font the
// avatar is rendered without initials text.
func NewAvatarService(log *logger.Logger) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	var face font.Face
	fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT"))
	if fontPath != "" {
		raw, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("could not read avatar font: %w", err)
		}
		parsed, err := truetype.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("could not parse avatar font: %w", err)
		}
		face = truetype.NewFace(parsed, &truetype.Options{Size: avatarSize * 0.42})
		serviceLog.Info("Avatar font loaded", "font", fontPath)
	} else {
		serviceLog.Debug("AVATAR_FONT not set, rendering avatars without initials")
	}

	return &avatarService{
		log:      serviceLog,
		bgColors: defaultAvatarColors,
		fontFace: face,
	}, nil
}

func (as *avatarService) Render(name string) (bytes.Buffer, error) {
	var buf bytes.Buffer

	dc := gg.NewContext(avatarSize, avatarSize)
	bg := as.bgColors[colorIndex(name, len(as.bgColors))]
	dc.SetColor(bg)
	dc.Clear()

	if as.fontFace != nil {
		dc.SetFontFace(as.fontFace)
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(initials(name), avatarSize/2, avatarSize/2, 0.5, 0.5)
	} else {
		// No font available: a lighter inner disc keeps the avatar
		// visually distinct from a flat tile.
		dc.SetRGBA(1, 1, 1, 0.25)
		dc.DrawCircle(avatarSize/2, avatarSize/2, avatarSize*0.33)
		dc.Fill()
	}

	if err := dc.EncodePNG(&buf); err != nil {
		return buf, domainagg.Wrap(domainagg.CodeInternal, "avatar.render", err)
	}
	return buf, nil
}

func colorIndex(name string, n int) int {
	if n == 0 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	return int(h.Sum32() % uint32(n))
}

func initials(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	switch len(fields) {
	case 0:
		return "?"
	case 1:
		r := []rune(fields[0])
		return strings.ToUpper(string(r[0]))
	default:
		first := []rune(fields[0])
		last := []rune(fields[len(fields)-1])
		return strings.ToUpper(string(first[0]) + string(last[0]))
	}
}
