package config

import (
	"errors"
	"flag"
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

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d catalog database DSN
//	-cache-path client cache SQLite file path
//	-c/-config json file path with configs
//	-adapter-address gateway address the client connects to
//	-identity-token caller identity token attached to client requests
//	-signer-base-url public base URL of the asset store
//	-signer-key HMAC key for URL signatures
//	-url-ttl signed URL validity (e.g., "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-interval client background sync period (e.g., "5m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var cachePath string
	var jsonConfigPath string
	var adapterAddress string
	var identityToken string
	var signerBaseURL string
	var signerKey string
	var urlTTL time.Duration
	var requestTimeout time.Duration
	var syncInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Catalog database DSN")
	flag.StringVar(&cachePath, "cache-path", "", "Client cache SQLite path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&adapterAddress, "adapter-address", "", "Gateway address for the client")
	flag.StringVar(&identityToken, "identity-token", "", "Caller identity token")
	flag.StringVar(&signerBaseURL, "signer-base-url", "", "Asset store public base URL")
	flag.StringVar(&signerKey, "signer-key", "", "URL signature HMAC key")
	flag.DurationVar(&urlTTL, "url-ttl", 0, "Signed URL validity (e.g., 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Client sync period (e.g., 5m)")

	flag.Parse()

	return &StructuredConfig{
		Signer: Signer{
			BaseURL:   signerBaseURL,
			SecretKey: signerKey,
			URLTTL:    urlTTL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Cache: Cache{
				Path: cachePath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
			IdentityToken:  identityToken,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
