package ws

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrTLSKeyPairIncomplete = errors.New("ws: tls cert and key files must be set together")
)

// TLSConfig configures wss:// dials. The zero value uses system roots.
type TLSConfig struct {
	CAFile             string
	CertFile           string
	KeyFile            string
	ServerName         string
	InsecureSkipVerify bool
}

func (t TLSConfig) isZero() bool {
	return t == TLSConfig{}
}

func (t TLSConfig) clientConfig() (*tls.Config, error) {
	if t.isZero() {
		return nil, nil
	}
	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: t.InsecureSkipVerify,
		ServerName:         strings.TrimSpace(t.ServerName),
	}

	if caPath := strings.TrimSpace(t.CAFile); caPath != "" {
		caPEM, err := os.ReadFile(caPath)
		if err != nil {
			return nil, err
		}
		pool := x509.NewCertPool()
		if ok := pool.AppendCertsFromPEM(caPEM); !ok {
			return nil, fmt.Errorf("ws: parse tls ca bundle: %s", caPath)
		}
		cfg.RootCAs = pool
	}

	certFile, keyFile := strings.TrimSpace(t.CertFile), strings.TrimSpace(t.KeyFile)
	if (certFile == "") != (keyFile == "") {
		return nil, ErrTLSKeyPairIncomplete
	}
	if certFile != "" {
		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return nil, err
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}
