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

// Status is the outcome of one pass over one module. A pass either
// succeeds without touching the module or succeeds having changed it;
// internal inconsistencies are defects and panic instead.
type Status uint8

const (
    StatusUnchanged Status = iota
    StatusChanged
)

func (self Status) String() string {
    if self == StatusChanged {
        return "changed"
    } else {
        return "unchanged"
    }
}

// Pass transforms a module through its pass context.
type Pass interface {
    Apply(ctx *Context) Status
}

// Context carries one module through a pass pipeline, together with a
// lazily built def-use index. All state is private to one pipeline
// run; passes are executed strictly one after another, so the context
// needs no locking.
type Context struct {
    mod  *ir.Module
    uses *ir.DefUse
}

func NewContext(mod *ir.Module) *Context {
    return &Context { mod: mod }
}

// Module returns the module under optimization.
func (self *Context) Module() *ir.Module {
    return self.mod
}

// DefUse returns the def-use index of the module, building it on first
// request. Mutations through the index (KillDef, KillInst) keep it
// consistent, so a pass that only removes instructions does not need
// to invalidate it.
func (self *Context) DefUse() *ir.DefUse {
    if self.uses == nil {
        self.uses = ir.BuildDefUse(self.mod)
    }
    return self.uses
}

// Invalidate discards the def-use index. Passes that rewrite operands
// directly instead of going through the index must call this before
// the next pass runs.
func (self *Context) Invalidate() {
    self.uses = nil
}
