package cliservice

import (
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/crypto"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
)

// GenerateKeys creates a key pair of the given algorithm and writes it into dir.
func (s *Service) GenerateKeys(dir string, algorithm types.Algorithm, force bool) (crypto.KeyFiles, types.PublicKey, error) {
	key, err := crypto.GenerateKey(algorithm)
	if err != nil {
		return crypto.KeyFiles{}, types.PublicKey{}, err
	}
	files, err := crypto.WriteKeyFiles(dir, key, force)
	if err != nil {
		return crypto.KeyFiles{}, types.PublicKey{}, err
	}
	s.logger.Info().
		Stringer(logging.FieldPublicKey, key.PublicKey()).
		Str(logging.FieldPath, dir).
		Msg("Keys generated")
	return files, key.PublicKey(), nil
}
