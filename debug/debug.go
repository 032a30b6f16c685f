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
	"sync/atomic"

	"github.com/cloudwego/spirt/opt"
)

// A Stats records statistics about the optimizer.
type Stats struct {
	Elim ElimStats
}

// An ElimStats records how many instructions the dead constant
// elimination pass removed over the lifetime of the process.
type ElimStats struct {
	Consts   int
	Metadata int
}

// GetStats returns statistics of the optimizer.
func GetStats() Stats {
	return Stats {
		Elim: ElimStats {
			Consts:   int(atomic.LoadInt64(&opt.KilledConsts)),
			Metadata: int(atomic.LoadInt64(&opt.KilledMetadata)),
		},
	}
}
