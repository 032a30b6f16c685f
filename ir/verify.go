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
    `gonum.org/v1/gonum/graph/simple`
    `gonum.org/v1/gonum/graph/topo`
)

// Verify checks the structural well-formedness of a module before it
// is handed to the optimizer:
//
//   - every result identifier is defined exactly once;
//   - every identifier operand resolves to a definition;
//   - the constant reference graph is acyclic, in particular no
//     composite constant references its own result identifier.
//
// Constants referencing constants form a DAG in any valid module, so a
// cycle means the producer of the module is broken; optimizing such a
// module would not terminate meaningfully.
func Verify(mod *Module) error {
    defs := make(map[Id]*Instruction)

    /* check for redefinitions */
    var err error
    mod.ForEach(func(p *Instruction) {
        if err != nil {
            return
        }
        if p.R != 0 {
            if _, ok := defs[p.R]; ok {
                err = RedefError { Id: p.R }
            } else {
                defs[p.R] = p
            }
        }
    })
    if err != nil {
        return err
    }

    /* check that every reference resolves */
    mod.ForEach(func(p *Instruction) {
        if err != nil {
            return
        }
        if p.Type != 0 {
            if _, ok := defs[p.Type]; !ok {
                err = RefError { Id: p.Type, User: p }
                return
            }
        }
        for _, v := range p.Opd {
            if v.Kind == K_id {
                if _, ok := defs[v.Id]; !ok {
                    err = RefError { Id: v.Id, User: p }
                    return
                }
            }
        }
    })
    if err != nil {
        return err
    }

    /* build the constant-to-constant reference graph */
    dag := simple.NewDirectedGraph()
    for _, c := range mod.Constants() {
        if !IsCompositeConstant(c.Op) {
            continue
        }
        for _, v := range c.Opd {
            if v.Kind != K_id {
                continue
            }
            def := defs[v.Id]
            if def == nil || !IsConstant(def.Op) {
                continue
            }
            if v.Id == c.R {
                return CycleError { Ids: []Id { c.R } }
            }
            from := simple.Node(c.R)
            to := simple.Node(v.Id)
            if dag.Node(int64(from)) == nil { dag.AddNode(from) }
            if dag.Node(int64(to)) == nil   { dag.AddNode(to)   }
            dag.SetEdge(dag.NewEdge(from, to))
        }
    }

    /* a topological order exists iff the graph is acyclic */
    if _, terr := topo.Sort(dag); terr != nil {
        uo, _ := terr.(topo.Unorderable)
        return CycleError { Ids: cyclenodes(uo) }
    }
    return nil
}

func cyclenodes(uo topo.Unorderable) (ret []Id) {
    for _, scc := range uo {
        for _, n := range scc {
            ret = append(ret, Id(n.ID()))
        }
    }
    return
}
