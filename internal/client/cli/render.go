package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/qaforum/internal/client/api"
)

const (
	timeLayout    = "2006-01-02 15:04"
	maxTitleWidth = 60
)

func authorName(a *api.Author, userID int64) string {
	if a == nil || a.UserName == "" {
		return fmt.Sprintf("user#%d", userID)
	}
	return a.UserName
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func renderQuestions(w io.Writer, qs []api.Question) {
	if len(qs) == 0 {
		fmt.Fprintln(w, "No questions found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTAG\tAUTHOR\tCREATED")
	for _, q := range qs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			q.QuestionID, truncate(q.Title, maxTitleWidth), q.Tag, authorName(q.Author, q.UserID), q.CreatedAt.Local().Format(timeLayout))
	}
	_ = tw.Flush()
}

func renderQuestion(w io.Writer, q *api.Question, answers []api.Answer) {
	fmt.Fprintf(w, "%s\n%s\n", q.Title, strings.Repeat("=", len([]rune(q.Title))))
	fmt.Fprintf(w, "id: %s  by %s  %s%s\n", q.QuestionID, authorName(q.Author, q.UserID), q.CreatedAt.Local().Format(timeLayout), edited(q.CreatedAt, q.UpdatedAt))
	if q.Tag != "" {
		fmt.Fprintf(w, "tag: %s\n", q.Tag)
	}
	fmt.Fprintf(w, "\n%s\n\n", q.Description)

	if len(answers) == 0 {
		fmt.Fprintln(w, "No answers yet")
		return
	}

	fmt.Fprintf(w, "%d answer(s):\n", len(answers))
	for _, ans := range answers {
		fmt.Fprintf(w, "\n[#%d] %s  %s%s\n%s\n",
			ans.AnswerID, authorName(ans.Author, ans.UserID), ans.CreatedAt.Local().Format(timeLayout), edited(ans.CreatedAt, ans.UpdatedAt), ans.Answer)
	}
}

func edited(created, updated time.Time) string {
	if updated.After(created) {
		return " (edited)"
	}
	return ""
}
