package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/disintegration/imaging"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/invoice"
	"github.com/andy/agencyflow/internal/repository"
)

// Logo bounds. Larger images are scaled down keeping their aspect ratio.
const (
	LogoMaxWidth  = 360
	LogoMaxHeight = 120
)

// AgencyService manages the agency profile printed on invoices
type AgencyService interface {
	Get(ctx context.Context) (*domain.AgencyProfile, error)
	Save(ctx context.Context, profile *domain.AgencyProfile) error

	// ImportLogo stores the image at path as a PNG data URI
	ImportLogo(ctx context.Context, path string) (*domain.AgencyProfile, error)
	RemoveLogo(ctx context.Context) error

	// CustomTemplate returns the saved custom layout, or the built-in one
	CustomTemplate(ctx context.Context) (string, error)
	SetCustomTemplate(ctx context.Context, tmpl string) error
	ResetCustomTemplate(ctx context.Context) error
}

type agencyService struct {
	agencyRepo repository.AgencyRepository
}

// NewAgencyService creates a new agency service
func NewAgencyService(agencyRepo repository.AgencyRepository) AgencyService {
	return &agencyService{agencyRepo: agencyRepo}
}

func (s *agencyService) Get(ctx context.Context) (*domain.AgencyProfile, error) {
	return s.agencyRepo.Get(ctx)
}

func (s *agencyService) Save(ctx context.Context, profile *domain.AgencyProfile) error {
	return s.agencyRepo.Save(ctx, profile)
}

func (s *agencyService) ImportLogo(ctx context.Context, path string) (*domain.AgencyProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open logo: %w", err)
	}
	defer f.Close()

	uri, err := LogoDataURI(f)
	if err != nil {
		return nil, err
	}

	profile, err := s.agencyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	profile.LogoURL = uri
	if err := s.agencyRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *agencyService) RemoveLogo(ctx context.Context) error {
	profile, err := s.agencyRepo.Get(ctx)
	if err != nil {
		return err
	}
	profile.LogoURL = ""
	return s.agencyRepo.Save(ctx, profile)
}

func (s *agencyService) CustomTemplate(ctx context.Context) (string, error) {
	profile, err := s.agencyRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	if profile.CustomInvoiceTemplate == "" {
		return invoice.DefaultCustomTemplate, nil
	}
	return profile.CustomInvoiceTemplate, nil
}

func (s *agencyService) SetCustomTemplate(ctx context.Context, tmpl string) error {
	profile, err := s.agencyRepo.Get(ctx)
	if err != nil {
		return err
	}
	profile.CustomInvoiceTemplate = tmpl
	return s.agencyRepo.Save(ctx, profile)
}

func (s *agencyService) ResetCustomTemplate(ctx context.Context) error {
	return s.SetCustomTemplate(ctx, "")
}

// LogoDataURI decodes an image, fits it within the logo bounds and encodes
// it as a base64 PNG data URI
func LogoDataURI(r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode logo: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > LogoMaxWidth || b.Dy() > LogoMaxHeight {
		img = imaging.Fit(img, LogoMaxWidth, LogoMaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode logo: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
