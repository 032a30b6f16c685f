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
    `fmt`
    `strings`
)

// RedefError occures when a module defines the same result identifier
// more than once.
type RedefError struct {
    Id Id
}

func (self RedefError) Error() string {
    return fmt.Sprintf("RedefError(%s): identifier is defined more than once", self.Id)
}

// RefError occures when an instruction references an identifier that
// nothing in the module defines.
type RefError struct {
    Id   Id
    User *Instruction
}

func (self RefError) Error() string {
    return fmt.Sprintf("RefError(%s): undefined reference in %q", self.Id, self.User.String())
}

// CycleError occures when the constant reference graph contains a
// cycle, including the degenerate case of a composite constant that
// references its own result identifier.
type CycleError struct {
    Ids []Id
}

func (self CycleError) Error() string {
    ids := make([]string, 0, len(self.Ids))
    for _, id := range self.Ids {
        ids = append(ids, id.String())
    }
    return fmt.Sprintf("CycleError(%s): constants must not reference themselves", strings.Join(ids, ", "))
}
