package http

import (
	"flag"
	"path/filepath"
	"testing"
)

func TestRegisterFlags(t *testing.T) {
	p := DefaultParams()
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	p.RegisterFlags(fs)
	if err := fs.Parse([]string{"-a", ":8080", "-p", "static"}); err != nil {
		t.Fatal(err)
	}
	if p.Address != ":8080" || p.Prefix != "static" || p.Root != "." {
		t.Errorf("params = %+v", p)
	}
}

func TestResolve(t *testing.T) {
	p := Params{Prefix: "static", Root: "."}
	if err := p.Resolve(); err != nil {
		t.Fatal(err)
	}
	if p.Prefix != "/static/" {
		t.Errorf("prefix = %q, want %q", p.Prefix, "/static/")
	}
	if !filepath.IsAbs(p.Root) {
		t.Errorf("root = %q, want an absolute path", p.Root)
	}

	p = Params{Prefix: "/", Root: "."}
	if err := p.Resolve(); err != nil {
		t.Fatal(err)
	}
	if p.Prefix != "/" {
		t.Errorf("prefix = %q, want %q", p.Prefix, "/")
	}
}
