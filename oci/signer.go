package oci

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/idanyas/oci-launch/config"
)

// Signer signs OCI API requests with the HTTP signature scheme (version 1).
type Signer struct {
	keyID      string
	privateKey *rsa.PrivateKey
	now        func() time.Time
}

// NewSigner creates a Signer from the credentials of an OCI config profile.
func NewSigner(cfg *config.Config) (*Signer, error) {
	keyData, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("could not read private key file: %w", err)
	}

	privateKey, err := parsePrivateKey(keyData)
	if err != nil {
		return nil, err
	}

	return &Signer{
		keyID:      fmt.Sprintf("%s/%s/%s", cfg.TenancyID, cfg.UserID, cfg.KeyFingerprint),
		privateKey: privateKey,
		now:        time.Now,
	}, nil
}

// parsePrivateKey accepts an unencrypted RSA key in PKCS1 or PKCS8 PEM form.
func parsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block containing private key")
	}

	pkcs1Key, err1 := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err1 == nil {
		return pkcs1Key, nil
	}

	pkcs8Key, err8 := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err8 != nil {
		return nil, fmt.Errorf("failed to parse private key: (pkcs1: %v), (pkcs8: %v)", err1, err8)
	}
	rsaKey, ok := pkcs8Key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("key is not an RSA private key")
	}
	return rsaKey, nil
}

// Sign sets the Date, Host and Authorization headers on req. Requests with a
// body also get x-content-sha256, Content-Type and Content-Length.
func (s *Signer) Sign(req *http.Request, body []byte) error {
	date := s.now().UTC().Format(http.TimeFormat)
	req.Header.Set("Date", date)
	req.Header.Set("Host", req.URL.Host)

	headers := []string{"(request-target)", "date", "host"}
	values := map[string]string{
		"(request-target)": strings.ToLower(req.Method) + " " + req.URL.RequestURI(),
		"date":             date,
		"host":             req.URL.Host,
	}

	if req.Method == http.MethodPost || req.Method == http.MethodPut {
		hash := sha256.Sum256(body)
		values["x-content-sha256"] = base64.StdEncoding.EncodeToString(hash[:])
		values["content-type"] = "application/json"
		values["content-length"] = strconv.Itoa(len(body))

		for _, h := range []string{"x-content-sha256", "content-type", "content-length"} {
			req.Header.Set(h, values[h])
			headers = append(headers, h)
		}
	}

	lines := make([]string, 0, len(headers))
	for _, h := range headers {
		lines = append(lines, h+": "+values[h])
	}

	hashed := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	signature, err := rsa.SignPKCS1v15(rand.Reader, s.privateKey, crypto.SHA256, hashed[:])
	if err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf(
		`Signature version="1",keyId="%s",algorithm="rsa-sha256",headers="%s",signature="%s"`,
		s.keyID,
		strings.Join(headers, " "),
		base64.StdEncoding.EncodeToString(signature),
	))
	return nil
}
