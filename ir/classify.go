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

// Class is the metadata category of an opcode. Annotation and debug
// instructions describe other instructions without carrying semantic
// meaning; a reference from one of them never keeps its target alive.
type Class uint8

const (
    ClassOther Class = iota
    ClassAnnotation
    ClassDebug1     // source-level debug info (OpSource et al., OpString)
    ClassDebug2     // name debug info (OpName, OpMemberName)
    ClassDebug3     // module-processed markers
)

var _ClassNames = [...]string {
    ClassOther      : "Other",
    ClassAnnotation : "Annotation",
    ClassDebug1     : "Debug1",
    ClassDebug2     : "Debug2",
    ClassDebug3     : "Debug3",
}

func (self Class) String() string {
    return _ClassNames[self]
}

// Classify categorizes an opcode as annotation, one of the three debug
// tiers, or an ordinary instruction.
func Classify(op Opcode) Class {
    switch {
        case op >= OpDecorate && op <= OpGroupMemberDecorate      : return ClassAnnotation
        case op >= OpSourceContinued && op <= OpSourceExtension   : return ClassDebug1
        case op == OpString || op == OpLine || op == OpNoLine     : return ClassDebug1
        case op == OpName || op == OpMemberName                   : return ClassDebug2
        case op == OpModuleProcessed                              : return ClassDebug3
        default                                                   : return ClassOther
    }
}

// IsMetadata reports whether the opcode is an annotation or a debug
// instruction of any tier.
func IsMetadata(op Opcode) bool {
    return Classify(op) != ClassOther
}

// IsConstant reports whether the opcode defines a constant or a
// specialization constant, scalar or composite.
func IsConstant(op Opcode) bool {
    switch op {
        case OpConstantTrue         : fallthrough
        case OpConstantFalse        : fallthrough
        case OpConstant             : fallthrough
        case OpConstantComposite    : fallthrough
        case OpConstantNull         : fallthrough
        case OpSpecConstantTrue     : fallthrough
        case OpSpecConstantFalse    : fallthrough
        case OpSpecConstant         : fallthrough
        case OpSpecConstantComposite: fallthrough
        case OpSpecConstantOp       : return true
        default                     : return false
    }
}

// IsCompositeConstant reports whether the opcode is a constant whose
// operands may reference other constants: composite constants, spec
// composite constants, and spec constant operations.
func IsCompositeConstant(op Opcode) bool {
    switch op {
        case OpConstantComposite     : fallthrough
        case OpSpecConstantComposite : fallthrough
        case OpSpecConstantOp        : return true
        default                      : return false
    }
}

// IsType reports whether the opcode defines a type.
func IsType(op Opcode) bool {
    return op >= OpTypeVoid && op <= OpTypeFunction
}
