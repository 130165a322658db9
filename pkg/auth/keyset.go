package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

// minRefresh bounds how often an unknown kid may trigger a refetch.
const minRefresh = time.Minute

// KeySet holds the RSA verification keys of an identity provider, decoded
// once per fetch and looked up by kid.
type KeySet struct {
	url    string
	client *http.Client

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

func NewKeySet(url string) *KeySet {
	return &KeySet{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
		keys:   map[string]*rsa.PublicKey{},
	}
}

// rawKey is one entry of the provider's key document; only RSA keys are used.
type rawKey struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (s *KeySet) lookup(kid string) (*rsa.PublicKey, error) {
	s.mu.RLock()
	key, ok := s.keys[kid]
	s.mu.RUnlock()
	if ok {
		return key, nil
	}

	if err := s.refresh(); err != nil {
		return nil, fmt.Errorf("signing keys: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if key, ok = s.keys[kid]; !ok {
		return nil, fmt.Errorf("signing key %q not published", kid)
	}
	return key, nil
}

func (s *KeySet) refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.keys) > 0 && time.Since(s.fetchedAt) < minRefresh {
		return nil
	}

	resp, err := s.client.Get(s.url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var doc struct {
		Keys []rawKey `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return err
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, raw := range doc.Keys {
		if raw.Kty != "RSA" || raw.Kid == "" {
			continue
		}
		key, err := raw.publicKey()
		if err != nil {
			return fmt.Errorf("key %q: %w", raw.Kid, err)
		}
		keys[raw.Kid] = key
	}
	s.keys = keys
	s.fetchedAt = time.Now()
	return nil
}

func (k rawKey) publicKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}
	exp := new(big.Int).SetBytes(e)
	if !exp.IsInt64() || exp.Int64() < 3 || len(n) == 0 {
		return nil, errors.New("malformed modulus or exponent")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(n), E: int(exp.Int64())}, nil
}
