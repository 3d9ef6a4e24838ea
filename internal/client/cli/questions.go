package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/qaforum/internal/client/api"
)

// List shows questions. The first argument is a tag ("-" for any tag); the
// remaining arguments form a title search.
func (a *App) List(ctx context.Context, args []string) error {
	var f api.QuestionFilter
	if len(args) > 0 && args[0] != "-" {
		f.Tag = args[0]
	}
	if len(args) > 1 {
		f.Query = strings.Join(args[1:], " ")
	}
	return a.listQuestions(ctx, f)
}

// Mine lists the questions asked by the logged-in user.
func (a *App) Mine(ctx context.Context) error {
	if !a.isLoggedIn() {
		return api.ErrNotLoggedIn
	}
	if a.userID == 0 {
		if err := a.WhoAmI(ctx); err != nil {
			return err
		}
	}
	return a.listQuestions(ctx, api.QuestionFilter{UserID: a.userID})
}

func (a *App) listQuestions(ctx context.Context, f api.QuestionFilter) error {
	qs, err := a.api.ListQuestions(ctx, f)
	if err != nil {
		return err
	}
	renderQuestions(a.out, qs)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("show <questionid>")
	}

	q, err := a.api.GetQuestion(ctx, args[0])
	if err != nil {
		return err
	}
	answers, err := a.api.ListAnswers(ctx, q.QuestionID)
	if err != nil {
		return err
	}

	renderQuestion(a.out, q, answers)
	return nil
}

func (a *App) Ask(ctx context.Context) error {
	if !a.isLoggedIn() {
		return api.ErrNotLoggedIn
	}

	var in api.QuestionInput
	var err error
	if in.Title, err = getSimpleText(a.reader, "Enter title (10-200 characters)", a.out); err != nil {
		return err
	}
	if in.Description, err = getMultiline(a.reader, "Enter description (at least 20 characters)", a.out); err != nil {
		return err
	}
	if in.Tag, err = getSimpleText(a.reader, "Enter tag (optional)", a.out); err != nil {
		return err
	}

	q, err := a.api.CreateQuestion(ctx, in)
	if err != nil {
		return a.check(err)
	}

	fmt.Fprintf(a.out, "Question posted: %s\n", q.QuestionID)
	return nil
}

// Edit loads one of the user's questions and replaces the fields the user
// re-enters. Empty input keeps the current value; "-" clears the tag.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("edit <questionid>")
	}
	if !a.isLoggedIn() {
		return api.ErrNotLoggedIn
	}

	q, err := a.api.GetQuestion(ctx, args[0])
	if err != nil {
		return err
	}
	if a.userID != 0 && q.UserID != a.userID {
		return errors.New("you can only edit your own questions")
	}

	in := api.QuestionInput{Title: q.Title, Description: q.Description, Tag: q.Tag}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", q.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" {
		in.Title = title
	}

	description, err := getMultiline(a.reader, "Description (empty keeps the current one)", a.out)
	if err != nil {
		return err
	}
	if description != "" {
		in.Description = description
	}

	tag, err := getSimpleText(a.reader, fmt.Sprintf("Tag [%s] (- to clear)", q.Tag), a.out)
	if err != nil {
		return err
	}
	switch tag {
	case "":
	case "-":
		in.Tag = ""
	default:
		in.Tag = tag
	}

	if _, err := a.api.UpdateQuestion(ctx, q.QuestionID, in); err != nil {
		return a.check(err)
	}

	fmt.Fprintln(a.out, "Question updated")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("delete <questionid>")
	}
	if !a.isLoggedIn() {
		return api.ErrNotLoggedIn
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Delete question %s and all its answers?", args[0]), a.out)
	if err != nil || !ok {
		return err
	}

	n, err := a.api.DeleteQuestion(ctx, args[0])
	if err != nil {
		return a.check(err)
	}

	fmt.Fprintf(a.out, "Question deleted (%d answer(s) removed)\n", n)
	return nil
}
