package crypto

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
)

const (
	SecretKeyFile    = "secret_key.pem"
	PublicKeyFile    = "public_key.pem"
	PublicKeyHexFile = "public_key_hex"
)

var ErrFileExists = errors.New("file already exists")

// KeyFiles holds the paths written by WriteKeyFiles.
type KeyFiles struct {
	SecretKey    string
	PublicKey    string
	PublicKeyHex string
}

// WriteKeyFiles writes the secret key, public key and public key hex into dir.
// Existing files are only replaced when force is set. Nothing is written if
// any of the files exists.
func WriteKeyFiles(dir string, key *SecretKey, force bool) (KeyFiles, error) {
	files := KeyFiles{
		SecretKey:    filepath.Join(dir, SecretKeyFile),
		PublicKey:    filepath.Join(dir, PublicKeyFile),
		PublicKeyHex: filepath.Join(dir, PublicKeyHexFile),
	}
	paths := []string{files.SecretKey, files.PublicKey, files.PublicKeyHex}

	if !force {
		for _, path := range paths {
			if _, err := os.Stat(path); err == nil {
				return KeyFiles{}, fmt.Errorf("%w: %s (use --force to overwrite)", ErrFileExists, path)
			}
		}
	}

	secretPEM, err := key.MarshalPEM()
	if err != nil {
		return KeyFiles{}, err
	}
	publicPEM, err := key.MarshalPublicKeyPEM()
	if err != nil {
		return KeyFiles{}, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return KeyFiles{}, err
	}
	contents := [][]byte{secretPEM, publicPEM, []byte(key.PublicKey().String())}
	modes := []os.FileMode{0o600, 0o644, 0o644}
	for i, path := range paths {
		if err := os.WriteFile(path, contents[i], modes[i]); err != nil {
			return KeyFiles{}, err
		}
	}
	return files, nil
}

// LoadPublicKey accepts a formatted public key or the path of a file holding
// one, such as public_key_hex.
func LoadPublicKey(value string) (types.PublicKey, error) {
	pk, err := types.ParsePublicKey(value)
	if err == nil {
		return pk, nil
	}

	data, readErr := os.ReadFile(value)
	if readErr != nil {
		return types.PublicKey{}, fmt.Errorf("%q is neither a public key (%w) nor a readable file (%w)", value, err, readErr)
	}
	pk, err = types.ParsePublicKey(strings.TrimSpace(string(data)))
	if err != nil {
		return types.PublicKey{}, fmt.Errorf("%s: %w", value, err)
	}
	return pk, nil
}
