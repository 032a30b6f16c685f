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

package debug

import (
	"testing"

	"github.com/cloudwego/spirt/ir"
	"github.com/cloudwego/spirt/opt"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	mod := &ir.Module {
		Debugs: []*ir.Instruction {
			ir.Ins(ir.OpName, 0, 0, ir.Ref(2), ir.Str("gone")),
		},
		Globals: []*ir.Instruction {
			ir.Ins(ir.OpTypeInt, 0, 1, ir.Lit(32), ir.Lit(1)),
			ir.Ins(ir.OpConstant, 1, 2, ir.Lit(1)),
		},
	}
	before := GetStats()
	changed, err := opt.Run(mod)
	require.NoError(t, err)
	require.True(t, changed)
	after := GetStats()
	require.Equal(t, before.Elim.Consts + 1, after.Elim.Consts)
	require.Equal(t, before.Elim.Metadata + 1, after.Elim.Metadata)
}
