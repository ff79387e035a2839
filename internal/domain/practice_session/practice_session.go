package practicesession

import (
	"errors"
	"math/rand/v2"

	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
	"github.com/remaimber-it/imagequiz/internal/id"
)

var ErrInvalidConfig = errors.New("invalid session configuration")

// PracticeSession is one run through a fixed number of randomly chosen questions.
// Queue is fixed at creation and never modified afterwards.
type PracticeSession struct {
	ID       string
	BankSize int
	Queue    []int
}

// New creates a session of the default size over the given bank.
func New(bank *questionbank.QuestionBank, rng *rand.Rand) (*PracticeSession, error) {
	return NewWithConfig(bank, DefaultConfig(), rng)
}

// NewWithConfig creates a session with the given configuration. A nil rng
// uses the auto-seeded process generator.
func NewWithConfig(bank *questionbank.QuestionBank, config SessionConfig, rng *rand.Rand) (*PracticeSession, error) {
	queue, err := NewQueue(bank.Size, config.Size, rng)
	if err != nil {
		return nil, err
	}

	return &PracticeSession{
		ID:       id.GenerateID(),
		BankSize: bank.Size,
		Queue:    queue,
	}, nil
}

// NewQueue draws size distinct ids uniformly from [1, bankSize]. Ids are kept
// in the order they were accepted, which is the presentation order.
func NewQueue(bankSize, size int, rng *rand.Rand) ([]int, error) {
	if err := (SessionConfig{Size: size}).Validate(bankSize); err != nil {
		return nil, err
	}

	draw := rand.IntN
	if rng != nil {
		draw = rng.IntN
	}

	queue := make([]int, 0, size)
	used := make(map[int]struct{}, size)
	for len(queue) < size {
		n := draw(bankSize) + 1
		if _, ok := used[n]; ok {
			continue
		}
		used[n] = struct{}{}
		queue = append(queue, n)
	}
	return queue, nil
}

func (s *PracticeSession) Len() int {
	return len(s.Queue)
}

// At returns the question id at position i of the queue.
func (s *PracticeSession) At(i int) int {
	return s.Queue[i]
}
