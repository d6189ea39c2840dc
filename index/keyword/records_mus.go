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


package keyword

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/Swetcha17/recruitment-automation/core"
)

// MUS serializers for the persisted postings store. Fields are encoded in
// struct declaration order; time.Time is encoded as Unix microseconds.

// posting records one document's occurrences of a term. Positions count kept
// tokens, so adjacency survives stop-word removal.
type posting struct {
	Doc       core.ID
	Frequency int
	Positions []int
}

// indexMeta holds the corpus statistics BM25 needs, stored once per version.
type indexMeta struct {
	Documents   int
	TotalLength int
	BuiltAt     time.Time
}

var intSliceMUS = ord.NewSliceSer[int](varint.Int)

var postingMUS = postingSer{}

type postingSer struct{}

func (s postingSer) Marshal(v posting, bs []byte) (n int) {
	n = core.IDMUS.Marshal(v.Doc, bs)
	n += varint.Int.Marshal(v.Frequency, bs[n:])
	n += intSliceMUS.Marshal(v.Positions, bs[n:])
	return n
}

func (s postingSer) Unmarshal(bs []byte) (v posting, n int, err error) {
	var n1 int
	if v.Doc, n, err = core.IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Frequency, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.Positions, n1, err = intSliceMUS.Unmarshal(bs[n:])
	n += n1
	return v, n, err
}

func (s postingSer) Size(v posting) (size int) {
	size = core.IDMUS.Size(v.Doc)
	size += varint.Int.Size(v.Frequency)
	size += intSliceMUS.Size(v.Positions)
	return size
}

func (s postingSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = core.IDMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = varint.Int.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	n1, err = intSliceMUS.Skip(bs[n:])
	return n + n1, err
}

var postingListMUS = ord.NewSliceSer[posting](postingMUS)

var metaMUS = metaSer{}

type metaSer struct{}

func (s metaSer) Marshal(v indexMeta, bs []byte) (n int) {
	n = varint.Int.Marshal(v.Documents, bs)
	n += varint.Int.Marshal(v.TotalLength, bs[n:])
	n += varint.Int64.Marshal(v.BuiltAt.UnixMicro(), bs[n:])
	return n
}

func (s metaSer) Unmarshal(bs []byte) (v indexMeta, n int, err error) {
	var n1 int
	if v.Documents, n, err = varint.Int.Unmarshal(bs); err != nil {
		return
	}
	if v.TotalLength, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var micro int64
	micro, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	v.BuiltAt = time.UnixMicro(micro).UTC()
	return v, n, err
}

func (s metaSer) Size(v indexMeta) (size int) {
	size = varint.Int.Size(v.Documents)
	size += varint.Int.Size(v.TotalLength)
	size += varint.Int64.Size(v.BuiltAt.UnixMicro())
	return size
}

func (s metaSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = varint.Int.Skip(bs); err != nil {
		return
	}
	if n1, err = varint.Int.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	n1, err = varint.Int64.Skip(bs[n:])
	return n + n1, err
}

// marshalPostings encodes a term's posting list for storage.
func marshalPostings(list []posting) []byte {
	bs := make([]byte, postingListMUS.Size(list))
	postingListMUS.Marshal(list, bs)
	return bs
}

// unmarshalPostings decodes a term's posting list.
func unmarshalPostings(bs []byte) ([]posting, error) {
	list, _, err := postingListMUS.Unmarshal(bs)
	return list, err
}

// marshalDocLength encodes a per-document token count.
func marshalDocLength(length int) []byte {
	bs := make([]byte, varint.Int.Size(length))
	varint.Int.Marshal(length, bs)
	return bs
}

// unmarshalDocLength decodes a per-document token count.
func unmarshalDocLength(bs []byte) (int, error) {
	length, _, err := varint.Int.Unmarshal(bs)
	return length, err
}

// marshalMeta encodes the per-version corpus statistics.
func marshalMeta(meta indexMeta) []byte {
	bs := make([]byte, metaMUS.Size(meta))
	metaMUS.Marshal(meta, bs)
	return bs
}

// unmarshalMeta decodes the per-version corpus statistics.
func unmarshalMeta(bs []byte) (indexMeta, error) {
	meta, _, err := metaMUS.Unmarshal(bs)
	return meta, err
}
