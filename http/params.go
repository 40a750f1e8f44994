// Package http holds the command line parameters of the streaming server.
package http

import (
	"flag"
	"fmt"
	"path/filepath"
)

// Params defines where the server listens and which static files it serves.
type Params struct {
	Address string
	Prefix  string
	Root    string
}

// DefaultParams serves the current directory under / on port 5000.
func DefaultParams() Params {
	return Params{
		Address: "localhost:5000",
		Prefix:  "/",
		Root:    ".",
	}
}

// RegisterFlags binds the parameters to the -a, -p and -r flags of fs.
func (p *Params) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&p.Address, "a", p.Address, "address to serve (host:port)")
	fs.StringVar(&p.Prefix, "p", p.Prefix, "prefix path under")
	fs.StringVar(&p.Root, "r", p.Root, "root path to serve")
}

// Resolve makes the root path absolute and normalizes the prefix.
func (p *Params) Resolve() error {
	root, err := filepath.Abs(p.Root)
	if err != nil {
		return fmt.Errorf("http: invalid root %q: %w", p.Root, err)
	}
	p.Root = root

	if p.Prefix == "" || p.Prefix[0] != '/' {
		p.Prefix = "/" + p.Prefix
	}
	if p.Prefix[len(p.Prefix)-1] != '/' {
		p.Prefix += "/"
	}
	return nil
}
