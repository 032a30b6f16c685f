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
	"testing"

	"github.com/cloudwego/spirt/ir"
	"github.com/stretchr/testify/require"
)

func testmod() *ir.Module {
	return &ir.Module {
		Debugs: []*ir.Instruction {
			ir.Ins(ir.OpName, 0, 0, ir.Ref(2), ir.Str("dead")),
			ir.Ins(ir.OpName, 0, 0, ir.Ref(3), ir.Str("live")),
		},
		Globals: []*ir.Instruction {
			ir.Ins(ir.OpTypeInt, 0, 1, ir.Lit(32), ir.Lit(1)),
			ir.Ins(ir.OpConstant, 1, 2, ir.Lit(1)),
			ir.Ins(ir.OpConstant, 1, 3, ir.Lit(2)),
		},
		Functions: []*ir.Function {
			{
				Ins: []*ir.Instruction {
					ir.Ins(ir.OpFunction, 1, 90),
					ir.Ins(ir.OpLabel, 0, 91),
					ir.Ins(ir.OpReturnValue, 0, 0, ir.Ref(3)),
					ir.Ins(ir.OpFunctionEnd, 0, 0),
				},
			},
		},
	}
}

func TestOptimize_Default(t *testing.T) {
	mod := testmod()
	changed, err := Optimize(mod)
	require.NoError(t, err)
	require.True(t, changed)

	/* %2 and its name are gone, %3 keeps its name */
	require.Len(t, mod.Constants(), 1)
	require.Len(t, mod.Debugs, 1)
	require.Equal(t, ir.Id(3), mod.Debugs[0].Opd[0].Id)
}

func TestOptimize_StripDebug(t *testing.T) {
	mod := testmod()
	changed, err := Optimize(mod, WithStripDebug())
	require.NoError(t, err)
	require.True(t, changed)
	require.Empty(t, mod.Debugs)
	require.Len(t, mod.Constants(), 1)
}

func TestOptimize_VerifyFailure(t *testing.T) {
	mod := testmod()
	mod.Globals = append(mod.Globals, ir.Ins(ir.OpConstantComposite, 1, 4, ir.Ref(4)))
	_, err := Optimize(mod)
	require.Error(t, err)
	require.IsType(t, ir.CycleError{}, err)

	/* the self-referential constant is processed anyway when the
	 * caller opts out of verification: the self-use keeps the count
	 * at one, so it survives untouched */
	changed, err := Optimize(mod, WithoutVerify())
	require.NoError(t, err)
	require.True(t, changed)
}
