// Copyright 2025 Stayely
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted types. Timestamps are stored as
// Unix microseconds.
var (
	IDMUS             = idMUS{}
	LearnedPairMUS    = learnedPairMUS{}
	KnowledgeEntryMUS = knowledgeEntryMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

type learnedPairMUS struct{}

func (learnedPairMUS) Marshal(p LearnedPair, bs []byte) int {
	n := ord.String.Marshal(p.Question, bs)
	n += ord.String.Marshal(p.Answer, bs[n:])
	n += varint.Int64.Marshal(p.LearnedAt.UnixMicro(), bs[n:])
	return n
}

func (learnedPairMUS) Unmarshal(bs []byte) (p LearnedPair, n int, err error) {
	var n1 int
	p.Question, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	p.Answer, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.LearnedAt = time.UnixMicro(micros).UTC()
	return
}

func (learnedPairMUS) Size(p LearnedPair) int {
	return ord.String.Size(p.Question) +
		ord.String.Size(p.Answer) +
		varint.Int64.Size(p.LearnedAt.UnixMicro())
}

type knowledgeEntryMUS struct{}

func (knowledgeEntryMUS) Marshal(e KnowledgeEntry, bs []byte) int {
	n := ord.String.Marshal(e.Query, bs)
	n += varint.Int.Marshal(len(e.Answers), bs[n:])
	for _, answer := range e.Answers {
		n += ord.String.Marshal(answer, bs[n:])
	}
	n += varint.Int64.Marshal(e.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (knowledgeEntryMUS) Unmarshal(bs []byte) (e KnowledgeEntry, n int, err error) {
	var n1 int
	e.Query, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var count int
	count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if count > 0 {
		e.Answers = make([]string, 0, count)
	}
	for i := 0; i < count; i++ {
		var answer string
		answer, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		e.Answers = append(e.Answers, answer)
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.UpdatedAt = time.UnixMicro(micros).UTC()
	return
}

func (knowledgeEntryMUS) Size(e KnowledgeEntry) int {
	size := ord.String.Size(e.Query) + varint.Int.Size(len(e.Answers))
	for _, answer := range e.Answers {
		size += ord.String.Size(answer)
	}
	return size + varint.Int64.Size(e.UpdatedAt.UnixMicro())
}
