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
    `sync/atomic`
    `testing`

    `github.com/cloudwego/spirt/ir`
    `github.com/stretchr/testify/require`
)

func TestRun_Default(t *testing.T) {
    mod := intmod(
        ir.Ins(ir.OpConstant, 1, 2, ir.Lit(1)),
        ir.Ins(ir.OpConstant, 1, 3, ir.Lit(2)),
    )
    mod.Functions = append(mod.Functions, retfn(3))

    nc := atomic.LoadInt64(&KilledConsts)
    changed, err := Run(mod)
    require.NoError(t, err)
    require.True(t, changed)

    /* %2 removed and its slot compacted away */
    require.Len(t, mod.Constants(), 1)
    require.Len(t, mod.Globals, 2)
    require.Equal(t, nc + 1, atomic.LoadInt64(&KilledConsts))
}

func TestRun_RejectsBrokenModule(t *testing.T) {
    mod := intmod(ir.Ins(ir.OpConstantComposite, 1, 2, ir.Ref(2)))
    changed, err := Run(mod)
    require.False(t, changed)
    require.Error(t, err)
    require.IsType(t, ir.CycleError{}, err)

    /* the module must be left untouched */
    require.Len(t, mod.Constants(), 1)
}

func TestExecute_NoCompaction(t *testing.T) {
    mod := intmod(ir.Ins(ir.OpConstant, 1, 2, ir.Lit(1)))
    require.True(t, Execute(NewContext(mod), new(DeadConstElim)))

    /* the nop slot stays until the caller compacts */
    require.Len(t, mod.Globals, 2)
    require.Equal(t, ir.OpNop, mod.Globals[1].Op)
}

func TestStripDebug_Apply(t *testing.T) {
    mod := intmod(ir.Ins(ir.OpConstant, 1, 2, ir.Lit(1)))
    mod.Debugs = []*ir.Instruction {
        ir.Ins(ir.OpString, 0, 40, ir.Str("shader.frag")),
        ir.Ins(ir.OpSource, 0, 0, ir.Lit(2), ir.Lit(450)),
        ir.Ins(ir.OpName, 0, 0, ir.Ref(2), ir.Str("one")),
        ir.Ins(ir.OpModuleProcessed, 0, 0, ir.Str("linked")),
    }
    mod.Annotations = []*ir.Instruction {
        ir.Ins(ir.OpDecorate, 0, 0, ir.Ref(2), ir.Lit(11)),
    }
    mod.Functions = append(mod.Functions, retfn(2))

    changed, err := Run(mod, new(StripDebug))
    require.NoError(t, err)
    require.True(t, changed)

    /* all debug tiers are gone, annotations are not debug info */
    require.Empty(t, mod.Debugs)
    require.Len(t, mod.Annotations, 1)

    /* a second strip finds nothing */
    changed, err = Run(mod, new(StripDebug))
    require.NoError(t, err)
    require.False(t, changed)
}
