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


package storage

import (
	"fmt"

	"github.com/stayely/pitia-assistente/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return id, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalLearnedPair serializes a LearnedPair to bytes.
func MarshalLearnedPair(pair *core.LearnedPair) []byte {
	buf := make([]byte, core.LearnedPairMUS.Size(*pair))
	core.LearnedPairMUS.Marshal(*pair, buf)
	return buf
}

// UnmarshalLearnedPair deserializes a LearnedPair from bytes.
func UnmarshalLearnedPair(data []byte) (*core.LearnedPair, error) {
	pair, _, err := core.LearnedPairMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &pair, nil
}

// MarshalKnowledgeEntry serializes a KnowledgeEntry to bytes.
func MarshalKnowledgeEntry(entry *core.KnowledgeEntry) []byte {
	buf := make([]byte, core.KnowledgeEntryMUS.Size(*entry))
	core.KnowledgeEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalKnowledgeEntry deserializes a KnowledgeEntry from bytes.
func UnmarshalKnowledgeEntry(data []byte) (*core.KnowledgeEntry, error) {
	entry, _, err := core.KnowledgeEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &entry, nil
}
