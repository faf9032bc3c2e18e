package services

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image/color"
	"image/png"
	"os"
	"path"
	"strings"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/arganhr/backoffice/internal/domain"
	"github.com/arganhr/backoffice/internal/platform/envutil"
	"github.com/arganhr/backoffice/internal/platform/logger"
	"github.com/arganhr/backoffice/internal/platform/storage"
)

const avatarSize = 256

// avatarPalette is cycled by a hash of the admin's name so the same
// person always renders the same background.
var avatarPalette = []color.NRGBA{
	{R: 0x2F, G: 0x6F, B: 0x8F, A: 0xFF},
	{R: 0x8F, G: 0x3B, B: 0x2F, A: 0xFF},
	{R: 0x3D, G: 0x7A, B: 0x4C, A: 0xFF},
	{R: 0x6B, G: 0x4F, B: 0x8F, A: 0xFF},
	{R: 0x8F, G: 0x6B, B: 0x2F, A: 0xFF},
	{R: 0x2F, G: 0x5A, B: 0x8F, A: 0xFF},
}

type AvatarService interface {
	CreateAndUploadAdminAvatar(ctx context.Context, admin *domain.Admin) error
}

type avatarService struct {
	log      *logger.Logger
	store    storage.ObjectStore
	fontPath string
}

// NewAvatarService accepts a nil store; generation is then skipped and
// admins simply have no avatar URL.
func NewAvatarService(log *logger.Logger, store storage.ObjectStore) AvatarService {
	return &avatarService{
		log:      log.With("service", "AvatarService"),
		store:    store,
		fontPath: envutil.GetEnv("AVATAR_FONT_PATH", "", log),
	}
}

func (s *avatarService) CreateAndUploadAdminAvatar(ctx context.Context, admin *domain.Admin) error {
	if s.store == nil {
		return nil
	}
	img, err := s.render(admin.FirstName, admin.LastName)
	if err != nil {
		return fmt.Errorf("render avatar: %w", err)
	}
	key := path.Join("avatars", admin.ID.String()+".png")
	if err := s.store.Upload(ctx, key, img); err != nil {
		return fmt.Errorf("upload avatar: %w", err)
	}
	admin.AvatarBucketKey = key
	admin.AvatarURL = s.store.PublicURL(key)
	return nil
}

func (s *avatarService) render(firstName, lastName string) (*bytes.Buffer, error) {
	initials := computeInitials(firstName, lastName)
	bg := pickColor(firstName + " " + lastName)

	dc := gg.NewContext(avatarSize, avatarSize)
	dc.SetColor(bg)
	dc.DrawCircle(avatarSize/2, avatarSize/2, avatarSize/2)
	dc.Fill()

	face, err := s.loadFontFace(avatarSize * 0.42)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(initials, avatarSize/2, avatarSize/2, 0.5, 0.5)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return &buf, nil
}

func (s *avatarService) loadFontFace(size float64) (font.Face, error) {
	if s.fontPath == "" {
		return nil, fmt.Errorf("AVATAR_FONT_PATH not set")
	}
	raw, err := os.ReadFile(s.fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	parsed, err := truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{Size: size}), nil
}

func computeInitials(firstName, lastName string) string {
	var b strings.Builder
	for _, name := range []string{firstName, lastName} {
		for _, r := range strings.TrimSpace(name) {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}

func pickColor(seed string) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(seed))))
	return avatarPalette[int(h.Sum32())%len(avatarPalette)]
}
