package config

import (
	"errors"
	"flag"
	"fmt"
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

// ParseFlags parses configuration flags from args (normally os.Args[1:]).
//
// Flags:
//
//	-a              HTTP server address host:port
//	-grpc-address   gRPC server address host:port
//	-d              database DSN
//	-redis          Redis URL
//	-bucket         media bucket name
//	-c / -config    JSON config file path
//	-token-sign-key token signing key
//	-token-issuer   token issuer name
//	-token-duration token lifetime (e.g. "24h")
//	-webhook-key    webhook HMAC key
//	-request-timeout inbound request timeout (e.g. "15s")
//	-server         chat server address for the client
//	-log-level      zerolog level
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-chat-core", flag.ContinueOnError)

	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN, redisURL, bucket string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer, webhookKey string
	var tokenDuration, requestTimeout time.Duration
	var clientServerAddress, logLevel string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&redisURL, "redis", "", "Redis URL")
	fs.StringVar(&bucket, "bucket", "", "Media bucket name")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 24h)")
	fs.StringVar(&webhookKey, "webhook-key", "", "Webhook HMAC key")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.StringVar(&clientServerAddress, "server", "", "Chat server address used by the client")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			WebhookKey:    webhookKey,
			LogLevel:      logLevel,
		},
		Storage: Storage{
			DB:      DB{DSN: databaseDSN},
			Redis:   Redis{URL: redisURL},
			Objects: Objects{Bucket: bucket},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress: clientServerAddress,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns the host:port form. An unset address yields "".
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The port must be positive and the host must be an IP
// address or "localhost". An empty host means all interfaces.
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

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
