// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"cogentcore.org/scenegraph/base/errors"
)

// Decoder is an interface for standard decoder types.
type Decoder interface {
	// Decode decodes from the io.Reader specified at creation.
	Decode(v any) error
}

// DecoderFunc is a function that creates a new Decoder for the given reader.
type DecoderFunc func(r io.Reader) Decoder

// Decoders are the strict decoders for the supported
// file extensions. Unknown fields are errors.
var Decoders = map[string]DecoderFunc{
	".toml": func(r io.Reader) Decoder {
		return toml.NewDecoder(r).DisallowUnknownFields()
	},
	".yaml": newYAMLDecoder,
	".yml":  newYAMLDecoder,
}

func newYAMLDecoder(r io.Reader) Decoder {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	return d
}

// Read decodes the configuration from the given reader on top of the
// default configuration, and validates it.
func Read(r io.Reader, f DecoderFunc) (*Config, error) {
	c := Default()
	if err := f(r).Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: decoding config: %w", errors.ErrValue, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Open reads the configuration from the given file, with a leading ~
// standing for the home directory. The decoder is chosen from [Decoders]
// by the file extension; an unknown one is an [errors.ErrValue] error.
func Open(filename string) (*Config, error) {
	f, ok := Decoders[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported config file type %q", errors.ErrValue, filename)
	}
	path, err := homedir.Expand(filename)
	if err != nil {
		return nil, err
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return Read(bufio.NewReader(fp), f)
}
