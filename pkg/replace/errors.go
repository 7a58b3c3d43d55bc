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

import "gitlab.com/tozd/go/errors"

// ❌ Error kinds. Returned errors wrap one of these, test with errors.Is.
var (
	// ErrMissingArgument is returned in strict mode for an empty haystack
	ErrMissingArgument = errors.Base("missing haystack")
	// ErrInvalidArgument is returned for needle specs that cannot be normalized
	ErrInvalidArgument = errors.Base("invalid argument")
	// ErrEmptyPipeline is returned when normalization yields no needles
	ErrEmptyPipeline = errors.Base("no valid needles")
	// ErrInvalidPipelineEntry is returned when a pipeline entry fails validation right before it runs
	ErrInvalidPipelineEntry = errors.Base("invalid pipeline entry")
)
