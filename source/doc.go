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


// Package source loads documents for summarization.
//
// Fetcher downloads PDFs from an allow-listed set of URL prefixes (arXiv by
// default) and ExtractText turns PDF bytes into plain text, one page per
// line group. LoadFile reads local PDFs or plain text files.
//
//	f := source.NewFetcher()
//	text, err := f.FetchText(ctx, "https://arxiv.org/pdf/2401.00001")
package source
