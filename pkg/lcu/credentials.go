// Package lcu locates a running League client and talks to its local REST API.
package lcu

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Command line prefixes the client is started with.
const (
	PortArg          = "--riotclient-app-port="
	TokenArg         = "--riotclient-auth-token="
	RemotingPortArg  = "--app-port="
	RemotingTokenArg = "--remoting-auth-token="
)

// ProcessNames are the executable names of the client UX process across
// platforms. Wine on Linux truncates the name to "LeagueClientUx.".
var ProcessNames = []string{"LeagueClientUx.exe", "LeagueClientUx", "LeagueClientUx."}

var (
	ErrArgumentNotFound    = errors.New("argument not found")
	ErrInvalidPort         = errors.New("invalid port")
	ErrProcessNotAvailable = errors.New("league client process not available")
)

// ArgumentNotFoundError names the prefix that was missing from the command line.
type ArgumentNotFoundError struct {
	Prefix string
}

func (e *ArgumentNotFoundError) Error() string {
	return fmt.Sprintf("argument %q not found", e.Prefix)
}

func (e *ArgumentNotFoundError) Is(target error) bool { return target == ErrArgumentNotFound }

// Credentials authenticate against the two local APIs. Tokens are already in
// Basic auth form: base64("riot:" + secret).
type Credentials struct {
	Port          uint16
	Token         string
	RemotingPort  uint16
	RemotingToken string
}

// ProcessFinder returns the argument list of the first running process whose
// name is one of names, or ErrProcessNotAvailable.
type ProcessFinder interface {
	FindArgs(ctx context.Context, names ...string) ([]string, error)
}

// Discover finds the client process and extracts its credentials.
func Discover(ctx context.Context, finder ProcessFinder) (Credentials, error) {
	args, err := finder.FindArgs(ctx, ProcessNames...)
	if err != nil {
		return Credentials{}, err
	}
	return ParseArgs(args)
}

// ParseCommandLine splits a raw command line and extracts credentials from it.
func ParseCommandLine(cmdline string) (Credentials, error) {
	return ParseArgs(SplitCommandLine(cmdline))
}

// ParseArgs extracts credentials from an already split argument list. The
// first argument carrying a prefix wins.
func ParseArgs(args []string) (Credentials, error) {
	var creds Credentials

	port, err := argValue(args, PortArg)
	if err != nil {
		return Credentials{}, err
	}
	if creds.Port, err = parsePort(port); err != nil {
		return Credentials{}, fmt.Errorf("%s: %w", PortArg, err)
	}
	token, err := argValue(args, TokenArg)
	if err != nil {
		return Credentials{}, err
	}
	creds.Token = BasicToken(token)

	remotingPort, err := argValue(args, RemotingPortArg)
	if err != nil {
		return Credentials{}, err
	}
	if creds.RemotingPort, err = parsePort(remotingPort); err != nil {
		return Credentials{}, fmt.Errorf("%s: %w", RemotingPortArg, err)
	}
	remotingToken, err := argValue(args, RemotingTokenArg)
	if err != nil {
		return Credentials{}, err
	}
	creds.RemotingToken = BasicToken(remotingToken)

	return creds, nil
}

// BasicToken encodes secret as the client expects it in an Authorization header.
func BasicToken(secret string) string {
	return base64.StdEncoding.EncodeToString([]byte("riot:" + secret))
}

func argValue(args []string, prefix string) (string, error) {
	for _, a := range args {
		if v, ok := strings.CutPrefix(a, prefix); ok {
			return v, nil
		}
	}
	return "", &ArgumentNotFoundError{Prefix: prefix}
}

func parsePort(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPort, s)
	}
	return uint16(n), nil
}

// SplitCommandLine splits on whitespace. Double quotes group words and are
// stripped.
func SplitCommandLine(cmdline string) []string {
	var (
		args    []string
		cur     strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range cmdline {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, cur.String())
	}
	return args
}
