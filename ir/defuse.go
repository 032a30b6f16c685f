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

package ir

// UseRef is one use site: the using instruction and the operand index
// at which the identifier appears. The result type of an instruction
// counts as a use at index -1.
type UseRef struct {
    User  *Instruction
    Index int
}

// DefUse is the identifier-keyed def-use index of a module: it maps
// every result identifier to its defining instruction and to the set
// of (user, operand-index) pairs referencing it. The index holds
// non-owning references only, the module stays the single owner of
// all instructions.
type DefUse struct {
    mod  *Module
    defs map[Id]*Instruction
    uses map[Id][]UseRef
}

// BuildDefUse scans the module and builds its def-use index.
func BuildDefUse(mod *Module) *DefUse {
    du := &DefUse {
        mod  : mod,
        defs : make(map[Id]*Instruction),
        uses : make(map[Id][]UseRef),
    }
    mod.ForEach(func(p *Instruction) { du.index(p) })
    return du
}

func (self *DefUse) index(p *Instruction) {
    if p.R != 0 {
        self.defs[p.R] = p
    }
    if p.Type != 0 {
        self.uses[p.Type] = append(self.uses[p.Type], UseRef { User: p, Index: -1 })
    }
    for i, v := range p.Opd {
        if v.Kind == K_id {
            self.uses[v.Id] = append(self.uses[v.Id], UseRef { User: p, Index: i })
        }
    }
}

// Module returns the module this index was built from.
func (self *DefUse) Module() *Module {
    return self.mod
}

// Def resolves an identifier to its defining instruction, or nil if
// nothing in the module defines it.
func (self *DefUse) Def(id Id) *Instruction {
    return self.defs[id]
}

// ForEachUse enumerates every (user, operand-index) pair referencing
// the identifier. Result-type references are visited with index -1.
func (self *DefUse) ForEachUse(id Id, visit func(user *Instruction, index int)) {
    for _, u := range self.uses[id] {
        visit(u.User, u.Index)
    }
}

// KillDef removes the instruction defining id from the module, and
// keeps the index consistent: the definition entry, its use list, and
// every use the defining instruction itself held on other identifiers
// are all dropped. The instruction slot becomes OpNop until the next
// module Compact.
//
// Killing an identifier with no definition is a defect in the caller.
func (self *DefUse) KillDef(id Id) {
    p := self.defs[id]
    if p == nil {
        panic("defuse: killing an undefined identifier: " + id.String())
    }
    self.KillInst(p)
}

// KillInst removes one instruction from the module, keeping the index
// consistent. Killing an already-removed instruction is a no-op, so
// that overlapping removal sets need no deduplication by the caller.
func (self *DefUse) KillInst(p *Instruction) {
    if p.Op == OpNop {
        return
    }

    /* drop the definition and all recorded uses of it */
    if p.R != 0 {
        delete(self.defs, p.R)
        delete(self.uses, p.R)
    }

    /* unregister the uses this instruction holds on other ids */
    if p.Type != 0 {
        self.unuse(p.Type, p)
    }
    for _, v := range p.Opd {
        if v.Kind == K_id {
            self.unuse(v.Id, p)
        }
    }

    /* leave a nop in the slot, Compact reclaims it later */
    p.ToNop()
}

func (self *DefUse) unuse(id Id, user *Instruction) {
    ref := self.uses[id]
    ret := ref[:0]
    for _, u := range ref {
        if u.User != user {
            ret = append(ret, u)
        }
    }
    if len(ret) == 0 {
        delete(self.uses, id)
    } else {
        self.uses[id] = ret
    }
}
