/*
 * Copyright 2022 ByteDance Inc.
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

package opt

import (
    `fmt`
    `os`

    `github.com/cloudwego/spirt/ir`
    `github.com/xyproto/env/v2`
)

// Statistics over all pipeline runs of this process, updated
// atomically by the passes and exposed through the debug package.
var (
    KilledConsts   int64
    KilledMetadata int64
)

type _PassDescriptor struct {
    pass Pass
    desc string
}

var _passes = [...]_PassDescriptor {
    { desc: "Dead Constant Elimination", pass: new(DeadConstElim) },
}

var tracing = env.Bool("SPIRT_DEBUG_PASSES")

// Execute runs the given passes over the context, in order, and
// reports whether any of them changed the module. The module is not
// verified and nop slots are not compacted; most callers want Run.
func Execute(ctx *Context, passes ...Pass) bool {
    changed := false
    for _, p := range passes {
        st := p.Apply(ctx)
        if tracing {
            fmt.Fprintf(os.Stderr, "spirt: %T: %s\n", p, st)
        }
        if st == StatusChanged {
            changed = true
        }
    }
    return changed
}

// Run verifies the module, executes the given passes over it (the
// default pipeline if none are given), and compacts the slots of
// removed instructions. It reports whether the module changed.
func Run(mod *ir.Module, passes ...Pass) (bool, error) {
    if err := ir.Verify(mod); err != nil {
        return false, err
    }

    /* fall back to the default pipeline */
    if len(passes) == 0 {
        passes = make([]Pass, 0, len(_passes))
        for _, d := range _passes {
            passes = append(passes, d.pass)
        }
    }

    /* run everything, reclaim the nop slots if anything was removed */
    ctx := NewContext(mod)
    changed := Execute(ctx, passes...)
    if changed {
        mod.Compact()
        ctx.Invalidate()
    }
    return changed, nil
}
