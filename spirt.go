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

// Package spirt optimizes SPIR-style IR modules.
package spirt

import (
	"github.com/cloudwego/spirt/internal/opts"
	"github.com/cloudwego/spirt/ir"
	"github.com/cloudwego/spirt/opt"
)

// Optimize runs the optimizer pipeline over mod in place and reports
// whether the module changed. The module is verified first unless
// WithoutVerify is given; a verification failure leaves the module
// untouched.
func Optimize(mod *ir.Module, options ...Option) (bool, error) {
	cfg := opts.GetDefaultOptions()
	for _, fn := range options {
		fn(&cfg)
	}

	/* assemble the pipeline */
	var passes []opt.Pass
	if cfg.StripDebug {
		passes = append(passes, new(opt.StripDebug))
	}
	passes = append(passes, new(opt.DeadConstElim))

	/* the low-level runner skips verification and compaction */
	if !cfg.SkipVerify {
		return opt.Run(mod, passes...)
	}
	ctx := opt.NewContext(mod)
	changed := opt.Execute(ctx, passes...)
	if changed {
		mod.Compact()
	}
	return changed, nil
}
