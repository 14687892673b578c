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


package retrieval

import "errors"

var (
	// ErrSearcherRequired is returned when a search backend is not provided.
	ErrSearcherRequired = errors.New("search backend required")

	// ErrFetcherRequired is returned when a page fetcher is not provided.
	ErrFetcherRequired = errors.New("page fetcher required")

	// ErrNoResults indicates the search returned no links.
	ErrNoResults = errors.New("no search results")

	// ErrNoContent indicates no fetched page had readable content.
	ErrNoContent = errors.New("no readable content in results")
)
