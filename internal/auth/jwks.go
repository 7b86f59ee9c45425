package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

// KeySet caches the RSA public keys published at a JWKS URL, indexed by kid.
type KeySet struct {
	url    string
	client *http.Client
	ttl    time.Duration

	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	fetched time.Time
}

func NewKeySet(url string, ttl time.Duration) *KeySet {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &KeySet{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		ttl:    ttl,
		keys:   make(map[string]*rsa.PublicKey),
	}
}

// Key returns the public key for kid, refreshing the cache when stale. A
// stale cached key is still served if the refresh fails.
func (k *KeySet) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	k.mu.RLock()
	key, ok := k.keys[kid]
	expired := time.Since(k.fetched) > k.ttl
	k.mu.RUnlock()

	if ok && !expired {
		return key, nil
	}

	keys, err := k.refresh(ctx)
	if err != nil {
		if ok {
			return key, nil
		}
		return nil, err
	}
	key, ok = keys[kid]
	if !ok {
		return nil, fmt.Errorf("jwk %s not found", kid)
	}
	return key, nil
}

func (k *KeySet) refresh(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	// Another request may have refreshed while we waited for the lock.
	if time.Since(k.fetched) < k.ttl && len(k.keys) > 0 {
		return k.keys, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := k.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks fetch status %d", resp.StatusCode)
	}

	var doc struct {
		Keys []struct {
			Kty string `json:"kty"`
			Kid string `json:"kid"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, jwk := range doc.Keys {
		if jwk.Kty != "RSA" || jwk.Kid == "" {
			continue
		}
		n, err := base64.RawURLEncoding.DecodeString(jwk.N)
		if err != nil {
			continue
		}
		e, err := base64.RawURLEncoding.DecodeString(jwk.E)
		if err != nil {
			continue
		}
		keys[jwk.Kid] = &rsa.PublicKey{
			N: new(big.Int).SetBytes(n),
			E: int(new(big.Int).SetBytes(e).Int64()),
		}
	}

	k.keys = keys
	k.fetched = time.Now()
	return keys, nil
}
