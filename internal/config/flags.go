package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args and returns the remaining
// positional arguments.
//
// Flags:
//
//	-a escrow server listen address in format [host]:[port]
//	-d database DSN (sqlite path on the client, postgres DSN on the server)
//	-c/-config json file path with configs
//	-user signed-in user id
//	-dev allow the development authenticator
//	-token bearer token for the escrow server
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-hash-key request integrity hash key
//	-keystore key store backend (keyring|sqlite)
//	-auto-lock inactivity period before the vault locks (e.g. "5m")
//	-escrow escrow server address used by the client
//	-request-timeout request timeout (e.g. "30s")
//	-log-dir directory for vault.log
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var userID string
	var devMode bool
	var token string
	var tokenSignKey string
	var tokenIssuer string
	var hashKey string
	var keyStore string
	var autoLock time.Duration
	var escrowAddress string
	var requestTimeout time.Duration
	var logDir string

	fs := flag.NewFlagSet("identra", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&userID, "user", "", "Signed-in user id")
	fs.BoolVar(&devMode, "dev", false, "Allow the development authenticator")
	fs.StringVar(&token, "token", "", "Bearer token for the escrow server")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.StringVar(&hashKey, "hash-key", "", "Request integrity hash key")
	fs.StringVar(&keyStore, "keystore", "", "Key store backend (keyring|sqlite)")
	fs.DurationVar(&autoLock, "auto-lock", 0, "Inactivity period before the vault locks (e.g., 5m)")
	fs.StringVar(&escrowAddress, "escrow", "", "Escrow server address")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&logDir, "log-dir", "", "Directory for vault.log")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			UserID:       userID,
			DevMode:      devMode,
			Token:        token,
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
			HashKey:      hashKey,
		},
		Vault: Vault{
			KeyStore: keyStore,
			AutoLock: autoLock,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    escrowAddress,
			RequestTimeout: requestTimeout,
		},
		Log:          Log{Dir: logDir},
		JSONFilePath: jsonConfigPath,
	}

	return cfg, fs.Args(), nil
}

// String returns a canonical host:port string for a NetAddress, or "" when
// neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port into the NetAddress. The host must be "localhost"
// or a literal IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
