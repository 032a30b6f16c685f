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

import (
    `strings`
)

// Function is a function definition, held as a flat instruction list
// from OpFunction through OpFunctionEnd.
type Function struct {
    Ins []*Instruction
}

// Module is a whole IR module, held in layout order: debug
// instructions, annotation instructions, types with module-scope
// constants and variables, then function bodies.
type Module struct {
    Debugs      []*Instruction
    Annotations []*Instruction
    Globals     []*Instruction
    Functions   []*Function
}

// ForEach visits every instruction of the module in layout order,
// skipping OpNop placeholders left behind by instruction removal.
func (self *Module) ForEach(visit func(p *Instruction)) {
    for _, p := range self.Debugs      { if p.Op != OpNop { visit(p) } }
    for _, p := range self.Annotations { if p.Op != OpNop { visit(p) } }
    for _, p := range self.Globals     { if p.Op != OpNop { visit(p) } }
    for _, fn := range self.Functions {
        for _, p := range fn.Ins {
            if p.Op != OpNop {
                visit(p)
            }
        }
    }
}

// Constants returns the ordered sequence of constant-defining
// instructions of the module.
func (self *Module) Constants() (ret []*Instruction) {
    for _, p := range self.Globals {
        if IsConstant(p.Op) {
            ret = append(ret, p)
        }
    }
    return
}

// Compact removes every OpNop placeholder from the module, releasing
// the slots of instructions nop'ed out by KillDef / KillInst.
func (self *Module) Compact() {
    self.Debugs = compact(self.Debugs)
    self.Annotations = compact(self.Annotations)
    self.Globals = compact(self.Globals)
    for _, fn := range self.Functions {
        fn.Ins = compact(fn.Ins)
    }
}

func compact(ins []*Instruction) []*Instruction {
    ret := ins[:0]
    for _, p := range ins {
        if p.Op != OpNop {
            ret = append(ret, p)
        }
    }
    return ret
}

func (self *Module) String() string {
    var sb strings.Builder
    self.ForEach(func(p *Instruction) {
        sb.WriteString(p.String())
        sb.WriteString("\n")
    })
    return sb.String()
}
