package service

import (
	"fmt"
	"strings"
)

// Labels holds the user-facing text the controller hands to the renderer.
type Labels struct {
	Next     string // advance control on every question but the last
	Finish   string // advance control on the last question
	Reveal   string // reveal control before the answer is shown
	Revealed string // reveal control while the answer is shown

	QuestionAlt string // image label, formatted with the question id
	AnswerAlt   string

	// Load failure messages, formatted with the asset path.
	QuestionLoadError string
	AnswerLoadError   string
}

func EnglishLabels() Labels {
	return Labels{
		Next:              "Next question",
		Finish:            "Return to start",
		Reveal:            "Show answer",
		Revealed:          "Showing answer",
		QuestionAlt:       "Question %d",
		AnswerAlt:         "Answer %d",
		QuestionLoadError: "Could not load the question image.\nPath: %s\n\nPlease check that the file exists.",
		AnswerLoadError:   "Could not load the answer image.\nPath: %s\n\nPlease check that the file exists.",
	}
}

func KoreanLabels() Labels {
	return Labels{
		Next:              "다음 문제",
		Finish:            "홈으로 돌아가기",
		Reveal:            "정답 보기",
		Revealed:          "정답 표시 중",
		QuestionAlt:       "문제 %d",
		AnswerAlt:         "정답 %d",
		QuestionLoadError: "문제 이미지를 불러올 수 없습니다.\n경로: %s\n\n파일이 존재하는지 확인해주세요.",
		AnswerLoadError:   "정답 이미지를 불러올 수 없습니다.\n경로: %s\n\n파일이 존재하는지 확인해주세요.",
	}
}

// LabelsFor picks a label set by locale. Unknown locales fall back to English.
func LabelsFor(locale string) Labels {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "ko", "ko-kr", "kr":
		return KoreanLabels()
	default:
		return EnglishLabels()
	}
}

// ProgressText formats a progress label, e.g. "4 of 10".
func ProgressText(current, total int) string {
	return fmt.Sprintf("%d of %d", current, total)
}
