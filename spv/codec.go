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

// Package spv serializes IR modules as little-endian word streams.
//
// Layout of a stream:
//
//	magic, version
//	debug count, annotation count, global count, function count
//	instructions of each section in order, functions prefixed
//	with their instruction count
//
// Every instruction starts with a header word (word count << 16 |
// opcode) followed by a flags word announcing the optional type and
// result identifiers, the operand count, then one tagged operand at a
// time. String operands carry their byte length and are zero-padded
// to a word boundary.
package spv

import (
    `encoding/binary`
    `fmt`

    `github.com/bytedance/gopkg/lang/dirtmake`
    `github.com/cloudwego/spirt/ir`
)

const (
    _Magic   = 0x53707274
    _Version = 1
)

const (
    _F_type   = 1 << 0
    _F_result = 1 << 1
)

// CorruptError occures when decoding a malformed or truncated stream.
type CorruptError struct {
    Pos    int
    Reason string
}

func (self CorruptError) Error() string {
    return fmt.Sprintf("Corrupt stream at word %d: %s", self.Pos, self.Reason)
}

func strwords(s string) int {
    return (len(s) + 3) / 4
}

func inswords(p *ir.Instruction) int {
    n := 3
    if p.Type != 0 { n++ }
    if p.R != 0    { n++ }
    for _, v := range p.Opd {
        if v.Kind == ir.K_str {
            n += 2 + strwords(v.Str)
        } else {
            n += 2
        }
    }
    return n
}

type _Writer struct {
    buf []byte
    pos int
}

func (self *_Writer) word(v uint32) {
    binary.LittleEndian.PutUint32(self.buf[self.pos:], v)
    self.pos += 4
}

func (self *_Writer) ins(p *ir.Instruction) {
    self.word(uint32(inswords(p)) << 16 | uint32(p.Op))

    /* flags, then the optional identifiers */
    flags := uint32(0)
    if p.Type != 0 { flags |= _F_type }
    if p.R != 0    { flags |= _F_result }
    self.word(flags)
    if p.Type != 0 { self.word(uint32(p.Type)) }
    if p.R != 0    { self.word(uint32(p.R)) }

    /* tagged operands */
    self.word(uint32(len(p.Opd)))
    for _, v := range p.Opd {
        self.word(uint32(v.Kind))
        switch v.Kind {
            case ir.K_id  : self.word(uint32(v.Id))
            case ir.K_str : self.str(v.Str)
            default       : self.word(v.Val)
        }
    }
}

func (self *_Writer) str(s string) {
    self.word(uint32(len(s)))
    end := self.pos + strwords(s) * 4
    copy(self.buf[self.pos:], s)
    for i := self.pos + len(s); i < end; i++ {
        self.buf[i] = 0
    }
    self.pos = end
}

// Encode serializes the module. Nop slots are not encoded, call
// Compact first if instructions were removed.
func Encode(mod *ir.Module) []byte {
    n := 6
    mod.ForEach(func(p *ir.Instruction) { n += inswords(p) })
    for range mod.Functions {
        n++
    }

    /* the buffer is fully overwritten, no need to zero it */
    w := _Writer { buf: dirtmake.Bytes(n * 4, n * 4) }
    w.word(_Magic)
    w.word(_Version)
    w.word(uint32(count(mod.Debugs)))
    w.word(uint32(count(mod.Annotations)))
    w.word(uint32(count(mod.Globals)))
    w.word(uint32(len(mod.Functions)))

    /* sections in layout order */
    for _, p := range mod.Debugs      { if p.Op != ir.OpNop { w.ins(p) } }
    for _, p := range mod.Annotations { if p.Op != ir.OpNop { w.ins(p) } }
    for _, p := range mod.Globals     { if p.Op != ir.OpNop { w.ins(p) } }
    for _, fn := range mod.Functions {
        w.word(uint32(count(fn.Ins)))
        for _, p := range fn.Ins {
            if p.Op != ir.OpNop {
                w.ins(p)
            }
        }
    }
    return w.buf
}

func count(ins []*ir.Instruction) (n int) {
    for _, p := range ins {
        if p.Op != ir.OpNop {
            n++
        }
    }
    return
}

type _Reader struct {
    buf []byte
    pos int
}

func (self *_Reader) word() (uint32, error) {
    if self.pos + 4 > len(self.buf) {
        return 0, CorruptError { Pos: self.pos / 4, Reason: "unexpected end of stream" }
    }
    v := binary.LittleEndian.Uint32(self.buf[self.pos:])
    self.pos += 4
    return v, nil
}

func (self *_Reader) str() (string, error) {
    n, err := self.word()
    if err != nil {
        return "", err
    }
    end := self.pos + int(n+3) / 4 * 4
    if int(n) > len(self.buf) || end > len(self.buf) {
        return "", CorruptError { Pos: self.pos / 4, Reason: "string extends past end of stream" }
    }
    s := string(self.buf[self.pos : self.pos + int(n)])
    self.pos = end
    return s, nil
}

func (self *_Reader) ins() (*ir.Instruction, error) {
    head, err := self.word()
    if err != nil {
        return nil, err
    }

    /* sanity-check the declared size against the remaining words */
    op := ir.Opcode(head & 0xffff)
    size := int(head >> 16)
    if size < 3 || (size - 1) * 4 > len(self.buf) - self.pos {
        return nil, CorruptError { Pos: self.pos / 4 - 1, Reason: "invalid instruction size" }
    }

    end := self.pos + (size - 1) * 4
    p := &ir.Instruction { Op: op }
    flags, err := self.word()
    if err != nil {
        return nil, err
    }
    if flags & _F_type != 0 {
        v, err := self.word()
        if err != nil {
            return nil, err
        }
        p.Type = ir.Id(v)
    }
    if flags & _F_result != 0 {
        v, err := self.word()
        if err != nil {
            return nil, err
        }
        p.R = ir.Id(v)
    }

    /* operand list */
    n, err := self.word()
    if err != nil {
        return nil, err
    }
    for i := 0; i < int(n); i++ {
        v, err := self.opd()
        if err != nil {
            return nil, err
        }
        p.Opd = append(p.Opd, v)
    }

    /* the declared size must match what was actually consumed */
    if self.pos != end {
        return nil, CorruptError { Pos: self.pos / 4, Reason: "instruction size mismatch" }
    }
    return p, nil
}

func (self *_Reader) opd() (ret ir.Operand, err error) {
    var kind uint32
    var word uint32

    /* operand tag */
    if kind, err = self.word(); err != nil {
        return
    }

    /* payload by kind */
    switch ir.OperandKind(kind) {
        case ir.K_id: {
            if word, err = self.word(); err == nil {
                ret = ir.Ref(ir.Id(word))
            }
        }
        case ir.K_lit: {
            if word, err = self.word(); err == nil {
                ret = ir.Lit(word)
            }
        }
        case ir.K_op: {
            if word, err = self.word(); err == nil {
                ret = ir.Subop(ir.Opcode(word))
            }
        }
        case ir.K_str: {
            var s string
            if s, err = self.str(); err == nil {
                ret = ir.Str(s)
            }
        }
        default: {
            err = CorruptError { Pos: self.pos / 4 - 1, Reason: "invalid operand kind" }
        }
    }
    return
}

// Decode parses a word stream back into a module.
func Decode(buf []byte) (*ir.Module, error) {
    r := _Reader { buf: buf }

    /* magic and version */
    if v, err := r.word(); err != nil {
        return nil, err
    } else if v != _Magic {
        return nil, CorruptError { Pos: 0, Reason: "bad magic" }
    }
    if v, err := r.word(); err != nil {
        return nil, err
    } else if v != _Version {
        return nil, CorruptError { Pos: 1, Reason: "unsupported version" }
    }

    /* section sizes */
    var nd, na, ng, nf uint32
    var err error
    if nd, err = r.word(); err != nil { return nil, err }
    if na, err = r.word(); err != nil { return nil, err }
    if ng, err = r.word(); err != nil { return nil, err }
    if nf, err = r.word(); err != nil { return nil, err }

    /* section bodies */
    mod := new(ir.Module)
    if mod.Debugs, err = r.section(nd); err != nil {
        return nil, err
    }
    if mod.Annotations, err = r.section(na); err != nil {
        return nil, err
    }
    if mod.Globals, err = r.section(ng); err != nil {
        return nil, err
    }
    for i := 0; i < int(nf); i++ {
        n, err := r.word()
        if err != nil {
            return nil, err
        }
        ins, err := r.section(n)
        if err != nil {
            return nil, err
        }
        mod.Functions = append(mod.Functions, &ir.Function { Ins: ins })
    }
    return mod, nil
}

func (self *_Reader) section(n uint32) (ret []*ir.Instruction, err error) {
    var p *ir.Instruction
    for i := 0; i < int(n); i++ {
        if p, err = self.ins(); err != nil {
            return nil, err
        }
        ret = append(ret, p)
    }
    return
}
