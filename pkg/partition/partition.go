/*
Copyright 2025 The Tempora Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package partition identifies a set of records that share a key and are
// bucketed into a common window. A partition is uniquely identified by the
// tuple {window start, window end, key} and maps a record to the
// aggregation bucket it belongs to.
package partition

import (
	"fmt"
	"time"
)

// ID uniquely identifies a partition.
type ID struct {
	Start time.Time
	End   time.Time
	Key   string
}

func (p ID) String() string {
	return fmt.Sprintf("%v-%v-%s", p.Start.UnixMilli(), p.End.UnixMilli(), p.Key)
}
