package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/chazu/ffidecl/cdecl"
	"github.com/chazu/ffidecl/ffidecl"
	"github.com/chazu/ffidecl/manifest"
)

var errStale = errors.New("generated files are out of date; run go generate")

type generateOptions struct {
	printOnly  bool
	check      bool
	dump       bool
	direct     bool
	configPath string
	namespace  string
	stdout     io.Writer
}

// generateTarget runs the scan, synthesis and emission for one package.
func generateTarget(target string, opts generateOptions) error {
	cfg, err := loadConfig(target, opts)
	if err != nil {
		return err
	}

	src, err := loadSource(target, opts.direct, cfg.GeneratedNames())
	if err != nil {
		return err
	}
	log.Infof("scanning package %s in %s (%d files)", src.Name, src.Dir, len(src.Files))

	out, err := ffidecl.Generate(src, cfg)
	if err != nil {
		return err
	}
	u := out.Unit
	log.Infof("found %d exported functions, %d passthrough declarations", len(u.Signatures), len(u.Passthrough))

	if opts.dump {
		spew.Fdump(opts.stdout, u.Signatures)
	}

	if _, err := cdecl.ParseCatalog(u.Catalog.Bytes()); err != nil {
		if opts.check {
			return fmt.Errorf("catalog does not parse: %w", err)
		}
		log.Warningf("catalog for %s will not parse: %v", u.Namespace, err)
	}

	if opts.printOnly {
		_, err := fmt.Fprintln(opts.stdout, u.Catalog.Text())
		return err
	}

	if opts.check {
		stale, err := out.Stale()
		if err != nil {
			return err
		}
		if len(stale) > 0 {
			return fmt.Errorf("%w: %v", errStale, stale)
		}
		log.Infof("%s is up to date", u.Accessor)
		return nil
	}

	written, err := out.Write()
	if err != nil {
		return err
	}
	if len(written) == 0 {
		log.Infof("%s is up to date", u.Accessor)
	}
	return nil
}

func loadConfig(target string, opts generateOptions) (ffidecl.Config, error) {
	var (
		m   *manifest.Manifest
		err error
	)
	if opts.configPath != "" {
		m, err = manifest.LoadFile(opts.configPath)
	} else if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
		m, err = manifest.FindAndLoad(target)
	} else {
		m, err = manifest.FindAndLoad(".")
	}
	if err != nil {
		return ffidecl.Config{}, fmt.Errorf("loading config: %w", err)
	}
	if m != nil {
		log.Debugf("using %s/%s", m.Dir, manifest.FileName)
	}

	cfg, err := m.Config()
	if err != nil {
		return ffidecl.Config{}, err
	}
	if opts.namespace != "" {
		if err := ffidecl.ValidateNamespace(opts.namespace); err != nil {
			return ffidecl.Config{}, err
		}
		cfg.Namespace = opts.namespace
	}
	return cfg, nil
}

func loadSource(target string, direct bool, skip []string) (*ffidecl.Source, error) {
	if direct {
		return ffidecl.ParseDir(target, skip...)
	}
	return ffidecl.LoadPackage(".", target, skip...)
}
