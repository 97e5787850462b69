// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package chunk splits long documents into overlapping, size-bounded segments.
//
// Splitting is deterministic and lossless: every character of the document
// belongs to at least one chunk, consecutive chunks share exactly the
// configured overlap, and Reassemble recovers the original text.
//
// Sizes are measured in characters (runes), not bytes. Break points are
// chosen at the latest separator inside the size budget, preferring
// paragraph breaks, then line breaks, then sentence ends, then spaces, and
// only falling back to a hard character cut when none fits.
//
//	c, err := chunk.New(10000, 100)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, ch := range c.Split(document) {
//	    fmt.Println(ch.Index, ch.Total, len(ch.Text))
//	}
package chunk
