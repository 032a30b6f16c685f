/*
 * Copyright 2022 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package spirt

import (
	"github.com/cloudwego/spirt/internal/opts"
)

// Option is the property setter function for opts.Options.
type Option func(*opts.Options)

// WithoutVerify skips module verification before the pipeline runs.
//
// Verification catches modules with duplicate or dangling identifiers
// and self-referential constants; only skip it for modules produced by
// a trusted front end.
func WithoutVerify() Option {
	return func(o *opts.Options) { o.SkipVerify = true }
}

// WithStripDebug removes all debug instructions before optimizing.
func WithStripDebug() Option {
	return func(o *opts.Options) { o.StripDebug = true }
}
