package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"shortr/internal/config"
	"shortr/internal/repositories"
)

const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type CodeService struct {
	cfg  config.Config
	urls *repositories.URLRepo
}

func NewCodeService(cfg config.Config, urls *repositories.URLRepo) *CodeService {
	return &CodeService{cfg: cfg, urls: urls}
}

// Generate produces a code of the configured length, uniform over the
// 62-character alphanumeric alphabet. Collisions are possible; the
// creation path handles them as a store uniqueness violation.
func (s *CodeService) Generate() (string, error) {
	var b strings.Builder
	for i := 0; i < s.cfg.CodeLength; i++ {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[j.Int64()])
	}
	return b.String(), nil
}

// GenerateUnique retries generation until the code is not yet taken.
// The create INSERT can still race another request, so callers also
// retry on a unique-constraint failure.
func (s *CodeService) GenerateUnique(ctx context.Context) (string, error) {
	for i := 0; i < 10; i++ {
		code, err := s.Generate()
		if err != nil {
			return "", err
		}
		exists, err := s.urls.ExistsCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not find unique code")
}

func (s *CodeService) IsValidCustomCode(code string) bool {
	if len(code) < s.cfg.CustomCodeMin || len(code) > s.cfg.CustomCodeMax {
		return false
	}
	for _, c := range code {
		if !(c >= 'a' && c <= 'z') &&
			!(c >= 'A' && c <= 'Z') &&
			!(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
