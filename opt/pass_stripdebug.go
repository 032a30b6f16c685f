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
    `github.com/cloudwego/spirt/ir`
)

// StripDebug removes every debug instruction of every tier from the
// module: source info, strings, names and module-processed markers,
// as well as line markers inside function bodies. Annotations are not
// debug info and are left alone.
type StripDebug struct{}

func (self StripDebug) Apply(ctx *Context) Status {
    var hit []*ir.Instruction
    use := ctx.DefUse()

    /* collect first, killing while iterating would skip slots */
    ctx.Module().ForEach(func(p *ir.Instruction) {
        switch ir.Classify(p.Op) {
            case ir.ClassDebug1, ir.ClassDebug2, ir.ClassDebug3: hit = append(hit, p)
        }
    })

    /* drop them all */
    for _, p := range hit {
        use.KillInst(p)
    }
    if len(hit) == 0 {
        return StatusUnchanged
    }
    return StatusChanged
}
