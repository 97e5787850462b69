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


// Package sumry produces structured technical summaries of long documents.
//
// Service is the entry point for applications. It wires a text-generation
// backend, the chunked map-reduce summarizer, a PDF document source and an
// optional on-disk summary cache:
//
//	svc, err := sumry.NewService(
//	    sumry.WithAIConfig(ai.NewConfig(ai.WithModel("gemma3:latest"))),
//	    sumry.WithCacheDir("/var/cache/sumry"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	result, err := svc.SummarizeURL(ctx, "https://arxiv.org/pdf/2401.00001")
//	fmt.Println(result.Report.Text)
//
// The summarization itself lives in package summarize and can be used
// directly with any ai.Generator.
package sumry
