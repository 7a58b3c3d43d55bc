// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package replace

import (
	"github.com/rs/zerolog"
	"github.com/walteh/segrep/pkg/needle"
)

// 🔧 Option configures a replacement run
type Option func(*options)

type options struct {
	engine needle.Engine
	logger zerolog.Logger
	strict bool
}

func newOptions(opts []Option) *options {
	o := &options{
		engine: needle.Stdlib,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithEngine selects the engine literal needles are compiled with
func WithEngine(e needle.Engine) Option {
	return func(o *options) {
		if e != nil {
			o.engine = e
		}
	}
}

// WithLogger sets the logger that receives per-pass debug and trace events
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithStrict makes an empty haystack an ErrMissingArgument instead of an empty result
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}
