package questionbank

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Reference bank: 114 numbered images with one answer image each.
const (
	DefaultSize          = 114
	DefaultQuestionsRoot = "./questions/"
	DefaultAnswersRoot   = "./answers/"
	DefaultExtension     = "png"
)

type AssetKind string

const (
	KindQuestion AssetKind = "question"
	KindAnswer   AssetKind = "answer"
)

// QuestionBank describes a bank of image questions numbered 1..Size. Each id
// maps to exactly one question image and one answer image, located by
// convention under the two roots.
type QuestionBank struct {
	Size          int
	QuestionsRoot string
	AnswersRoot   string
	Extension     string
}

func New(size int, questionsRoot, answersRoot string) *QuestionBank {
	return &QuestionBank{
		Size:          size,
		QuestionsRoot: withSlash(questionsRoot),
		AnswersRoot:   withSlash(answersRoot),
		Extension:     DefaultExtension,
	}
}

// Default returns the reference bank: 114 questions under ./questions/ and ./answers/.
func Default() *QuestionBank {
	return New(DefaultSize, DefaultQuestionsRoot, DefaultAnswersRoot)
}

func (qb *QuestionBank) Validate() error {
	if qb.Size < 1 {
		return fmt.Errorf("bank size must be at least 1, got %d", qb.Size)
	}
	if qb.QuestionsRoot == "" {
		return errors.New("questions root cannot be empty")
	}
	if qb.AnswersRoot == "" {
		return errors.New("answers root cannot be empty")
	}
	if qb.Extension == "" {
		return errors.New("asset extension cannot be empty")
	}
	return nil
}

// Contains reports whether id is a valid question identifier for this bank.
func (qb *QuestionBank) Contains(id int) bool {
	return id >= 1 && id <= qb.Size
}

func (qb *QuestionBank) Question(id int) Asset {
	return qb.asset(KindQuestion, qb.QuestionsRoot, id)
}

func (qb *QuestionBank) Answer(id int) Asset {
	return qb.asset(KindAnswer, qb.AnswersRoot, id)
}

func (qb *QuestionBank) asset(kind AssetKind, root string, id int) Asset {
	ext := qb.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	return Asset{
		Kind: kind,
		ID:   id,
		Root: root,
		Name: strconv.Itoa(id) + "." + ext,
	}
}

// Asset is one image of the bank, addressed as Root+Name.
type Asset struct {
	Kind AssetKind
	ID   int
	Root string
	Name string
}

// Path is the asset location without any query string, e.g. "./questions/17.png".
func (a Asset) Path() string {
	return a.Root + a.Name
}

// URL appends a cache-busting timestamp so every load attempt fetches a fresh copy.
// The v parameter carries no meaning for the server.
func (a Asset) URL(now time.Time) string {
	return a.Path() + "?v=" + strconv.FormatInt(now.UnixMilli(), 10)
}

func withSlash(root string) string {
	if root == "" || strings.HasSuffix(root, "/") {
		return root
	}
	return root + "/"
}
