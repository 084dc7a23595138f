// Copyright 2026 The Tapestry Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package serviceaccount loads and validates Google service account
// key files.
//
// A service account is the non-human identity the server authenticates
// as. Its JSON key file is issued by Google Cloud IAM and referenced
// via the GOOGLE_SERVICE_ACCOUNT_KEY environment variable. The key is
// validated eagerly at load time so that a malformed key fails at
// startup instead of on the first API call.
package serviceaccount

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/tapestry-tools/gdocs-mcp/lib/fault"
)

// EnvKeyPath is the environment variable naming the key file path.
const EnvKeyPath = "GOOGLE_SERVICE_ACCOUNT_KEY"

// defaultTokenURI is the Google OAuth2 token endpoint, used when the
// key file omits token_uri (it never does in practice, but the field
// is not load-bearing enough to fail on).
const defaultTokenURI = "https://oauth2.googleapis.com/token"

// Credentials mirrors the Google service account JSON key file.
type Credentials struct {
	// Type is the credential type marker; must be "service_account".
	Type string `json:"type"`

	// ProjectID is the Google Cloud project. Carried through for
	// diagnostics; not used by the credential logic.
	ProjectID string `json:"project_id"`

	// PrivateKeyID identifies the key within the service account.
	PrivateKeyID string `json:"private_key_id"`

	// PrivateKey is the PEM-encoded RSA private key.
	PrivateKey string `json:"private_key"`

	// ClientEmail is the service account's principal email. Used as
	// the assertion issuer.
	ClientEmail string `json:"client_email"`

	// ClientID is the numeric OAuth client identifier.
	ClientID string `json:"client_id"`

	// AuthURI is the interactive authorization endpoint. Unused by the
	// non-interactive flow; carried through from the key file.
	AuthURI string `json:"auth_uri"`

	// TokenURI is the token issuer endpoint the signed assertion is
	// exchanged at.
	TokenURI string `json:"token_uri"`
}

// LoadFromEnv loads credentials from the file named by the
// GOOGLE_SERVICE_ACCOUNT_KEY environment variable. A missing variable
// is a configuration error with a remediation hint; the process
// cannot do anything useful without credentials.
func LoadFromEnv() (*Credentials, error) {
	path := os.Getenv(EnvKeyPath)
	if path == "" {
		return nil, fault.Config("%s is not set; export it with the path to your service account JSON key file, e.g. export %s=/path/to/service-account.json", EnvKeyPath, EnvKeyPath)
	}
	return Load(path)
}

// Load reads, parses, and validates a service account key file.
func Load(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fault.Config("reading service account key file: %w", err)
	}

	var credentials Credentials
	if err := json.Unmarshal(data, &credentials); err != nil {
		return nil, fault.Config("parsing service account key file %s: %w", path, err)
	}

	if err := credentials.validate(); err != nil {
		return nil, err
	}
	return &credentials, nil
}

// validate checks the fields the credential flow depends on and parses
// the private key to surface a broken key at startup.
func (c *Credentials) validate() error {
	if c.Type != "service_account" {
		return fault.Config("key file type is %q, want %q", c.Type, "service_account")
	}
	if c.ClientEmail == "" {
		return fault.Config("key file is missing client_email")
	}
	if c.PrivateKey == "" {
		return fault.Config("key file is missing private_key")
	}
	if c.TokenURI == "" {
		c.TokenURI = defaultTokenURI
	}
	if _, err := ParseRSAPrivateKey([]byte(c.PrivateKey)); err != nil {
		return fault.Config("service account private key: %w", err)
	}
	return nil
}

// RSAKey parses and returns the credentials' RSA private key.
func (c *Credentials) RSAKey() (*rsa.PrivateKey, error) {
	return ParseRSAPrivateKey([]byte(c.PrivateKey))
}

// ParseRSAPrivateKey parses a PEM-encoded RSA private key. Google
// issues keys in PKCS#8 form; PKCS#1 is accepted as a fallback for
// keys re-encoded by other tooling.
func ParseRSAPrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in private key material")
	}

	keyInterface, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		pkcs1Key, pkcs1Err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if pkcs1Err != nil {
			return nil, fmt.Errorf("parsing private key: %w (also tried PKCS1: %v)", err, pkcs1Err)
		}
		return pkcs1Key, nil
	}

	rsaKey, ok := keyInterface.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is %T, want RSA", keyInterface)
	}
	return rsaKey, nil
}
