package alpinelib

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlpineLab/alpinelib/alnp"
	"github.com/BottleFmt/gobottle"
	"github.com/google/uuid"
)

// Store provides persistent device credentials. Implementations return a
// keychain containing at least one private key; the client derives its device
// identity from the first signing key.
type Store interface {
	Keychain() *gobottle.Keychain
}

// device ids are UUIDv5 values over the public key's PKIX encoding
var deviceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("alnp:device"))

// IdentityFromPublic derives a stable device identity from a public key. The
// same key always yields the same device id.
func IdentityFromPublic(pub crypto.PublicKey) (*alnp.DeviceIdentity, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}
	return &alnp.DeviceIdentity{ID: uuid.NewSHA1(deviceNamespace, der).String()}, nil
}

// diskStore implements Store and persists keys to disk in the user's config
// directory. Keys are stored in PEM-encoded PKCS#8 format as id_<key_type>.key
// files.
type diskStore struct {
	path string
	kc   *gobottle.Keychain
}

// NewDiskStore creates a new disk-based credentials store.
// Data is stored in filepath.Join(os.UserConfigDir(), "alpine").
// If no keys exist, a new Ed25519 key is generated automatically.
func NewDiskStore() (*diskStore, error) {
	return NewDiskStoreWithPath("")
}

// NewDiskStoreWithPath creates a new disk-based credentials store at the
// specified path. If path is empty, it defaults to
// filepath.Join(os.UserConfigDir(), "alpine"). If no keys exist, a new
// Ed25519 key is generated automatically.
func NewDiskStoreWithPath(path string) (*diskStore, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user config directory: %w", err)
		}
		path = filepath.Join(configDir, "alpine")
	}

	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	ds := &diskStore{
		path: path,
		kc:   gobottle.NewKeychain(),
	}

	if err := ds.loadKeys(); err != nil {
		return nil, fmt.Errorf("failed to load keys: %w", err)
	}

	// generate an initial key on first use
	hasKeys := false
	ds.kc.All(func(k gobottle.PrivateKey) bool {
		hasKeys = true
		return false
	})

	if !hasKeys {
		if err := ds.generateKey(); err != nil {
			return nil, fmt.Errorf("failed to generate initial key: %w", err)
		}
	}

	return ds, nil
}

// Keychain returns the keychain containing the stored private keys.
func (ds *diskStore) Keychain() *gobottle.Keychain {
	return ds.kc
}

// Path returns the directory path where keys are stored.
func (ds *diskStore) Path() string {
	return ds.path
}

// loadKeys loads all id_*.key files from the store directory.
func (ds *diskStore) loadKeys() error {
	entries, err := os.ReadDir(ds.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "id_") || !strings.HasSuffix(name, ".key") {
			continue
		}

		keyPath := filepath.Join(ds.path, name)
		if err := ds.loadKeyFile(keyPath); err != nil {
			// skip unreadable keys, the remaining files may still load
			continue
		}
	}

	return nil
}

// loadKeyFile loads a single PEM-encoded PKCS#8 private key file.
func (ds *diskStore) loadKeyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return errors.New("failed to decode PEM block")
	}

	if block.Type != "PRIVATE KEY" {
		return fmt.Errorf("unexpected PEM type: %s", block.Type)
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return fmt.Errorf("failed to parse PKCS#8 private key: %w", err)
	}

	return ds.kc.AddKey(key)
}

// generateKey generates a new Ed25519 private key and saves it to disk.
func (ds *diskStore) generateKey() error {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate ed25519 key: %w", err)
	}

	if err := ds.saveKey(key, "ed25519"); err != nil {
		return err
	}

	return ds.kc.AddKey(key)
}

// AddKey adds a private key to the keychain and saves it to disk.
// The keyType should describe the key (e.g., "ed25519", "ecdsa").
func (ds *diskStore) AddKey(key any, keyType string) error {
	if err := ds.saveKey(key, keyType); err != nil {
		return err
	}
	return ds.kc.AddKey(key)
}

// saveKey saves a private key to disk in PEM-encoded PKCS#8 format.
func (ds *diskStore) saveKey(key any, keyType string) error {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return fmt.Errorf("failed to marshal private key: %w", err)
	}

	block := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: der,
	}

	filename := fmt.Sprintf("id_%s.key", keyType)
	path := filepath.Join(ds.path, filename)

	// never overwrite an existing key file, pick a unique suffixed name
	if _, err := os.Stat(path); err == nil {
		for i := 1; ; i++ {
			filename = fmt.Sprintf("id_%s_%d.key", keyType, i)
			path = filepath.Join(ds.path, filename)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				break
			}
		}
	}

	return os.WriteFile(path, pem.EncodeToMemory(block), 0600)
}
