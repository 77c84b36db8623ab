// File: payload/source.go
// Author: momentics <momentics@gmail.com>
//
// Vocabulary-backed message sources.

package payload

import (
	"math/rand"

	"github.com/momentics/hioload-nio/api"
)

// Default vocabularies. Only the client side carries the sentinel.
var (
	ClientVocabulary = []string{"hello", "world", api.Sentinel}
	ServerVocabulary = []string{"I do", "I love", "I think"}
)

// Random picks uniformly over the indices of a fixed vocabulary.
type Random struct {
	words []string
	intn  func(n int) int
}

// NewRandom returns a source over words. It panics on an empty vocabulary.
func NewRandom(words []string) *Random {
	if len(words) == 0 {
		panic("payload: empty vocabulary")
	}
	return &Random{
		words: append([]string(nil), words...),
		intn:  rand.Intn,
	}
}

// Next implements api.PayloadSource.
func (r *Random) Next() string {
	return r.words[r.intn(len(r.words))]
}

// Vocabulary returns a copy of the words r chooses from.
func (r *Random) Vocabulary() []string {
	return append([]string(nil), r.words...)
}

// Sequence replays a script in order and starts over once exhausted.
type Sequence struct {
	script []string
	pos    int
}

// NewSequence returns a scripted source. It panics on an empty script.
func NewSequence(script ...string) *Sequence {
	if len(script) == 0 {
		panic("payload: empty script")
	}
	return &Sequence{script: append([]string(nil), script...)}
}

// Next implements api.PayloadSource.
func (s *Sequence) Next() string {
	msg := s.script[s.pos]
	s.pos = (s.pos + 1) % len(s.script)
	return msg
}
