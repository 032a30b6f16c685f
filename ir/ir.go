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

// Id is a result identifier, unique within one module.
// The zero value means "no identifier".
type Id uint32

func (self Id) String() string {
    return fmt.Sprintf("%%%d", uint32(self))
}

// Opcode identifies the operation of an instruction. The numbering
// follows the SPIR-V convention so that classification can be done
// with simple range checks.
type Opcode uint32

const (
    OpNop                  Opcode = 0
    OpSourceContinued      Opcode = 2
    OpSource               Opcode = 3
    OpSourceExtension      Opcode = 4
    OpName                 Opcode = 5
    OpMemberName           Opcode = 6
    OpString               Opcode = 7
    OpLine                 Opcode = 8
    OpExtension            Opcode = 10
    OpMemoryModel          Opcode = 14
    OpEntryPoint           Opcode = 15
    OpExecutionMode        Opcode = 16
    OpCapability           Opcode = 17
    OpTypeVoid             Opcode = 19
    OpTypeBool             Opcode = 20
    OpTypeInt              Opcode = 21
    OpTypeFloat            Opcode = 22
    OpTypeVector           Opcode = 23
    OpTypeArray            Opcode = 28
    OpTypeStruct           Opcode = 30
    OpTypePointer          Opcode = 32
    OpTypeFunction         Opcode = 33
    OpConstantTrue         Opcode = 41
    OpConstantFalse        Opcode = 42
    OpConstant             Opcode = 43
    OpConstantComposite    Opcode = 44
    OpConstantNull         Opcode = 46
    OpSpecConstantTrue      Opcode = 48
    OpSpecConstantFalse     Opcode = 49
    OpSpecConstant          Opcode = 50
    OpSpecConstantComposite Opcode = 51
    OpSpecConstantOp        Opcode = 52
    OpFunction             Opcode = 54
    OpFunctionParameter    Opcode = 55
    OpFunctionEnd          Opcode = 56
    OpVariable             Opcode = 59
    OpLoad                 Opcode = 61
    OpStore                Opcode = 62
    OpDecorate             Opcode = 71
    OpMemberDecorate       Opcode = 72
    OpDecorationGroup      Opcode = 73
    OpGroupDecorate        Opcode = 74
    OpGroupMemberDecorate  Opcode = 75
    OpIAdd                 Opcode = 128
    OpFAdd                 Opcode = 129
    OpIMul                 Opcode = 132
    OpLabel                Opcode = 248
    OpBranch               Opcode = 249
    OpReturn               Opcode = 253
    OpReturnValue          Opcode = 254
    OpNoLine               Opcode = 317
    OpModuleProcessed      Opcode = 330
)

var _OpcodeNames = map[Opcode]string {
    OpNop                   : "Nop",
    OpSourceContinued       : "SourceContinued",
    OpSource                : "Source",
    OpSourceExtension       : "SourceExtension",
    OpName                  : "Name",
    OpMemberName            : "MemberName",
    OpString                : "String",
    OpLine                  : "Line",
    OpExtension             : "Extension",
    OpMemoryModel           : "MemoryModel",
    OpEntryPoint            : "EntryPoint",
    OpExecutionMode         : "ExecutionMode",
    OpCapability            : "Capability",
    OpTypeVoid              : "TypeVoid",
    OpTypeBool              : "TypeBool",
    OpTypeInt               : "TypeInt",
    OpTypeFloat             : "TypeFloat",
    OpTypeVector            : "TypeVector",
    OpTypeArray             : "TypeArray",
    OpTypeStruct            : "TypeStruct",
    OpTypePointer           : "TypePointer",
    OpTypeFunction          : "TypeFunction",
    OpConstantTrue          : "ConstantTrue",
    OpConstantFalse         : "ConstantFalse",
    OpConstant              : "Constant",
    OpConstantComposite     : "ConstantComposite",
    OpConstantNull          : "ConstantNull",
    OpSpecConstantTrue      : "SpecConstantTrue",
    OpSpecConstantFalse     : "SpecConstantFalse",
    OpSpecConstant          : "SpecConstant",
    OpSpecConstantComposite : "SpecConstantComposite",
    OpSpecConstantOp        : "SpecConstantOp",
    OpFunction              : "Function",
    OpFunctionParameter     : "FunctionParameter",
    OpFunctionEnd           : "FunctionEnd",
    OpVariable              : "Variable",
    OpLoad                  : "Load",
    OpStore                 : "Store",
    OpDecorate              : "Decorate",
    OpMemberDecorate        : "MemberDecorate",
    OpDecorationGroup       : "DecorationGroup",
    OpGroupDecorate         : "GroupDecorate",
    OpGroupMemberDecorate   : "GroupMemberDecorate",
    OpIAdd                  : "IAdd",
    OpFAdd                  : "FAdd",
    OpIMul                  : "IMul",
    OpLabel                 : "Label",
    OpBranch                : "Branch",
    OpReturn                : "Return",
    OpReturnValue           : "ReturnValue",
    OpNoLine                : "NoLine",
    OpModuleProcessed       : "ModuleProcessed",
}

func (self Opcode) String() string {
    if v, ok := _OpcodeNames[self]; ok {
        return "Op" + v
    } else {
        return fmt.Sprintf("Op(%d)", uint32(self))
    }
}

// OperandKind distinguishes identifier references from plain payload
// operands. Only K_id operands participate in the def-use graph.
type OperandKind uint8

const (
    K_id OperandKind = iota     // reference to another instruction's result
    K_lit                       // literal word
    K_str                       // literal string
    K_op                        // embedded sub-opcode (OpSpecConstantOp)
)

type Operand struct {
    Kind OperandKind
    Id   Id
    Val  uint32
    Str  string
}

// Ref constructs an identifier-reference operand.
func Ref(id Id) Operand {
    return Operand { Kind: K_id, Id: id }
}

// Lit constructs a literal word operand.
func Lit(v uint32) Operand {
    return Operand { Kind: K_lit, Val: v }
}

// Str constructs a literal string operand.
func Str(s string) Operand {
    return Operand { Kind: K_str, Str: s }
}

// Subop constructs an embedded sub-opcode operand, as carried by
// OpSpecConstantOp. It is not an identifier reference, and must never
// be treated as one.
func Subop(op Opcode) Operand {
    return Operand { Kind: K_op, Val: uint32(op) }
}

func (self Operand) String() string {
    switch self.Kind {
        case K_id  : return self.Id.String()
        case K_lit : return fmt.Sprintf("%d", self.Val)
        case K_str : return fmt.Sprintf("%q", self.Str)
        case K_op  : return Opcode(self.Val).String()
        default    : panic("ir: invalid operand kind")
    }
}

// Instruction is a single IR operation. R is the result identifier (0
// if the instruction does not define a value), Type is the result type
// identifier (0 if untyped). Opd holds the in-operands only; the type
// and result identifiers are not operands.
//
// Instructions are owned by the enclosing module. Optimization passes
// never allocate or free them, they only rewrite them in place (see
// ToNop).
type Instruction struct {
    Op   Opcode
    Type Id
    R    Id
    Opd  []Operand
}

// Ins constructs an instruction. Passing 0 for typ or r means the
// instruction has no result type or result identifier.
func Ins(op Opcode, typ Id, r Id, opd ...Operand) *Instruction {
    return &Instruction {
        Op   : op,
        Type : typ,
        R    : r,
        Opd  : opd,
    }
}

// ToNop rewrites the instruction into OpNop in place, discarding the
// result identifier and all operands. The instruction stays in the
// module until the next Compact.
func (self *Instruction) ToNop() {
    self.Op = OpNop
    self.Type = 0
    self.R = 0
    self.Opd = nil
}

func (self *Instruction) String() string {
    var sb strings.Builder

    /* result identifier, if any */
    if self.R != 0 {
        sb.WriteString(self.R.String())
        sb.WriteString(" = ")
    }

    /* opcode and result type */
    sb.WriteString(self.Op.String())
    if self.Type != 0 {
        sb.WriteString(" ")
        sb.WriteString(self.Type.String())
    }

    /* operands */
    for _, v := range self.Opd {
        sb.WriteString(" ")
        sb.WriteString(v.String())
    }
    return sb.String()
}
