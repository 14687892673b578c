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


// Package storage provides the storage abstraction layer for the assistant.
//
// This package defines repository interfaces that decouple storage
// implementation from the conversation logic, so different backends
// (BadgerDB, in-memory) can be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage interfaces rather than concrete
// types:
//
//	learned, err := badger.NewLearnedRepository(backend)  // storage.LearnedRepository
//
// This keeps consumers decoupled from BadgerDB specifics and lets tests
// substitute mock implementations without modification.
//
// # Architecture
//
//   - Repository: transaction and lifecycle operations shared by all repositories
//   - LearnedRepository: question/answer pairs taught directly by the user
//   - KnowledgeRepository: answers accumulated from web retrieval, keyed by query
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
// Use in tests with in-memory storage:
//
//	learned, knowledge, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
