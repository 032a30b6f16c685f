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
    `sync/atomic`

    `github.com/cloudwego/spirt/ir`
    `github.com/oleiade/lane`
)

// DeadConstElim removes every constant that no real instruction uses,
// along with the annotation and debug instructions that only exist to
// describe a removed constant.
//
// References from metadata do not keep a constant alive, and removing
// a dead composite constant can turn its nested constants dead in
// turn, so liveness is propagated backwards through the def-use graph
// until it reaches a fixpoint.
type DeadConstElim struct{}

// _Worklist is a FIFO drain with set semantics: an instruction can sit
// in the list at most once at a time, and tracking membership is what
// lets the fixpoint guarantee every constant is processed exactly once.
type _Worklist struct {
    q *lane.Queue
    s map[*ir.Instruction]struct{}
}

func newWorklist() *_Worklist {
    return &_Worklist {
        q: lane.NewQueue(),
        s: make(map[*ir.Instruction]struct{}),
    }
}

func (self *_Worklist) add(p *ir.Instruction) {
    if _, ok := self.s[p]; !ok {
        self.s[p] = struct{}{}
        self.q.Enqueue(p)
    }
}

func (self *_Worklist) take() *ir.Instruction {
    p := self.q.Dequeue().(*ir.Instruction)
    delete(self.s, p)
    return p
}

func (self *_Worklist) empty() bool {
    return self.q.Empty()
}

// realuses counts the uses of a constant that occur in non-metadata
// instructions. A use inside an annotation or any tier of debug
// instruction does not keep the constant alive.
func (self DeadConstElim) realuses(use *ir.DefUse, c *ir.Instruction) int {
    n := 0
    use.ForEachUse(c.R, func(user *ir.Instruction, _ int) {
        if !ir.IsMetadata(user.Op) {
            n++
        }
    })
    return n
}

// release decrements the use counts held by a dead composite constant
// on the constants its operands reference, seeding every constant that
// drops to zero back into the worklist.
func (self DeadConstElim) release(use *ir.DefUse, counts map[*ir.Instruction]int, wl *_Worklist, p *ir.Instruction) {
    for _, v := range p.Opd {
        /* the embedded sub-opcode of OpSpecConstantOp and all literal
         * operands are not identifier references, never count them */
        if v.Kind != ir.K_id {
            continue
        }

        /* operands may reference non-constants (e.g. type ids for
         * OpSpecConstantOp conversions), those carry no count */
        def := use.Def(v.Id)
        if def == nil {
            continue
        }
        n, ok := counts[def]
        if !ok {
            continue
        }

        /* every composite is drained exactly once, so each of its
         * operand references is released exactly once; hitting zero
         * here means the initial counting was already wrong */
        if n <= 0 {
            panic(fmt.Sprintf("deadconst: use count underflow on %s in %q", v.Id, p.String()))
        }
        counts[def] = n - 1
        if n == 1 {
            wl.add(def)
        }
    }
}

// describesLive reports whether a metadata instruction still references
// a constant that survives the pass. References to non-constants (such
// as decoration groups) are not decisive either way.
func (self DeadConstElim) describesLive(use *ir.DefUse, dead map[*ir.Instruction]struct{}, p *ir.Instruction) bool {
    for _, v := range p.Opd {
        if v.Kind != ir.K_id {
            continue
        }
        def := use.Def(v.Id)
        if def == nil || !ir.IsConstant(def.Op) {
            continue
        }
        if _, ok := dead[def]; !ok {
            return true
        }
    }
    return false
}

func (self DeadConstElim) Apply(ctx *Context) Status {
    mod := ctx.Module()
    use := ctx.DefUse()

    /* Phase 1: count the real uses of every constant, dead-on-arrival
     * constants seed the worklist */
    wl := newWorklist()
    consts := mod.Constants()
    counts := make(map[*ir.Instruction]int, len(consts))

    for _, c := range consts {
        n := self.realuses(use, c)
        counts[c] = n
        if n == 0 {
            wl.add(c)
        }
    }

    /* Phase 2: back-propagate through the def-use graph until the
     * worklist drains; everything drained is dead, and nothing dead
     * ever re-enters the list */
    dead := make(map[*ir.Instruction]struct{})
    for !wl.empty() {
        p := wl.take()
        if ir.IsCompositeConstant(p.Op) {
            self.release(use, counts, wl, p)
        }
        dead[p] = struct{}{}
    }

    /* Phase 3: metadata describing only dead constants dies with them;
     * a set, since one instruction may describe several dead constants.
     * Metadata still describing at least one live constant stays. */
    metadata := make(map[*ir.Instruction]struct{})
    for p := range dead {
        use.ForEachUse(p.R, func(user *ir.Instruction, _ int) {
            if ir.IsMetadata(user.Op) && !self.describesLive(use, dead, user) {
                metadata[user] = struct{}{}
            }
        })
    }

    /* Phase 4: remove the dead constants and their metadata */
    for p := range dead {
        use.KillDef(p.R)
    }
    for p := range metadata {
        use.KillInst(p)
    }

    /* nothing removed means nothing changed */
    if len(dead) == 0 {
        return StatusUnchanged
    }
    atomic.AddInt64(&KilledConsts, int64(len(dead)))
    atomic.AddInt64(&KilledMetadata, int64(len(metadata)))
    return StatusChanged
}
