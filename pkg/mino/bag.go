package mino

import (
	"fmt"
	"math/rand"
	"sync"
)

const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// Randomizer supplies the kind of each new piece.
type Randomizer interface {
	Take() Kind
}

// NewRandomizer returns the named randomizer seeded with seed.
func NewRandomizer(name string, seed int64) (Randomizer, error) {
	switch name {
	case "", RandomizerUniform:
		return NewUniform(seed), nil
	case RandomizerBag:
		return NewBag(seed, Kinds)
	default:
		return nil, fmt.Errorf("unknown randomizer %q", name)
	}
}

// Uniform draws every kind independently with equal probability.
type Uniform struct {
	r *rand.Rand
	sync.Mutex
}

func NewUniform(seed int64) *Uniform {
	return &Uniform{r: rand.New(rand.NewSource(seed))}
}

func (u *Uniform) Take() Kind {
	u.Lock()
	defer u.Unlock()

	return Kinds[u.r.Intn(len(Kinds))]
}

// Bag deals every kind once per shuffled round.
type Bag struct {
	Kinds    []Kind
	Original []Kind

	randomizer *rand.Rand

	i int
	*sync.Mutex
}

func NewBag(seed int64, kinds []Kind) (*Bag, error) {
	if len(kinds) == 0 {
		return nil, fmt.Errorf("bag needs at least one kind")
	}
	b := &Bag{Original: kinds, randomizer: rand.New(rand.NewSource(seed)), Mutex: new(sync.Mutex)}

	b.shuffle()

	return b, nil
}

func (b *Bag) Take() Kind {
	b.Lock()
	defer b.Unlock()

	k := b.Kinds[b.i]
	if b.i == len(b.Kinds)-1 {
		b.shuffle()

		b.i = 0
	} else {
		b.i++
	}

	return k
}

func (b *Bag) shuffle() {
	if b.Kinds == nil {
		b.Kinds = make([]Kind, len(b.Original))
	}
	copy(b.Kinds, b.Original)

	b.randomizer.Shuffle(len(b.Kinds), func(i, j int) { b.Kinds[i], b.Kinds[j] = b.Kinds[j], b.Kinds[i] })
}

// Sequence repeats a fixed list of kinds. Useful for scripted games.
type Sequence struct {
	kinds []Kind
	i     int
	sync.Mutex
}

func NewSequence(kinds ...Kind) *Sequence {
	if len(kinds) == 0 {
		kinds = Kinds
	}
	return &Sequence{kinds: kinds}
}

func (s *Sequence) Take() Kind {
	s.Lock()
	defer s.Unlock()

	k := s.kinds[s.i%len(s.kinds)]
	s.i++
	return k
}
