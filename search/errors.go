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


package search

import "errors"

var (
	// ErrEmptyQuery is returned when the search query is empty.
	ErrEmptyQuery = errors.New("empty search query")

	// ErrBadStatus is returned when the search endpoint answers with a
	// non-200 status.
	ErrBadStatus = errors.New("unexpected response status")

	// ErrBackendRequired is returned when a chain is built without backends.
	ErrBackendRequired = errors.New("at least one search backend required")
)
