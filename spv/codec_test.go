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

package spv

import (
    `testing`

    `github.com/cloudwego/spirt/ir`
    `github.com/stretchr/testify/require`
)

func testmod() *ir.Module {
    return &ir.Module {
        Debugs: []*ir.Instruction {
            ir.Ins(ir.OpString, 0, 40, ir.Str("shader.frag")),
            ir.Ins(ir.OpName, 0, 0, ir.Ref(2), ir.Str("one")),
        },
        Annotations: []*ir.Instruction {
            ir.Ins(ir.OpDecorate, 0, 0, ir.Ref(2), ir.Lit(11)),
        },
        Globals: []*ir.Instruction {
            ir.Ins(ir.OpTypeInt, 0, 1, ir.Lit(32), ir.Lit(1)),
            ir.Ins(ir.OpConstant, 1, 2, ir.Lit(42)),
            ir.Ins(ir.OpSpecConstantOp, 1, 3, ir.Subop(ir.OpIAdd), ir.Ref(2), ir.Ref(2)),
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

func TestCodec_RoundTrip(t *testing.T) {
    mod := testmod()
    buf := Encode(mod)
    ret, err := Decode(buf)
    require.NoError(t, err)
    require.Equal(t, mod.String(), ret.String())
    require.Len(t, ret.Functions, 1)
    require.Equal(t, mod.Globals[2].Opd, ret.Globals[2].Opd)
}

func TestCodec_SkipsNops(t *testing.T) {
    mod := testmod()
    mod.Globals[2].ToNop()
    ret, err := Decode(Encode(mod))
    require.NoError(t, err)
    require.Len(t, ret.Globals, 2)
}

func TestCodec_BadMagic(t *testing.T) {
    buf := Encode(testmod())
    buf[0] ^= 0xff
    _, err := Decode(buf)
    require.Error(t, err)
    require.IsType(t, CorruptError{}, err)
}

func TestCodec_Truncated(t *testing.T) {
    buf := Encode(testmod())
    for n := 0; n < len(buf); n += 4 {
        _, err := Decode(buf[:n])
        require.Error(t, err, "prefix of %d bytes", n)
        require.IsType(t, CorruptError{}, err)
    }
}
