// Copyright 2025 Stayely
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


// Package search provides web search backends for the retrieval pipeline.
//
// Two backend shapes are defined:
//   - LinkBackend returns result URLs for a query, feeding the page
//     fetching pipeline
//   - SnippetBackend returns full results (title, URL, snippet), feeding
//     the learn-and-respond path
//
// The DuckDuckGo implementation scrapes the HTML endpoint. Cached
// decorators memoize results per query, and Chain tries backends in
// order until one returns results.
package search
