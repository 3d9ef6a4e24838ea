package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/qaforum/internal/client/api"
)

func (a *App) Answer(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("answer <questionid>")
	}
	if !a.isLoggedIn() {
		return api.ErrNotLoggedIn
	}

	body, err := getMultiline(a.reader, "Enter your answer (at least 10 characters)", a.out)
	if err != nil {
		return err
	}

	ans, err := a.api.CreateAnswer(ctx, args[0], body)
	if err != nil {
		return a.check(err)
	}

	fmt.Fprintf(a.out, "Answer posted: #%d\n", ans.AnswerID)
	return nil
}

func (a *App) EditAnswer(ctx context.Context, args []string) error {
	id, err := answerIDArg(args, "editanswer <answerid>")
	if err != nil {
		return err
	}
	if !a.isLoggedIn() {
		return api.ErrNotLoggedIn
	}

	body, err := getMultiline(a.reader, "Enter the new answer text", a.out)
	if err != nil {
		return err
	}

	if _, err := a.api.UpdateAnswer(ctx, id, body); err != nil {
		return a.check(err)
	}

	fmt.Fprintln(a.out, "Answer updated")
	return nil
}

func (a *App) DeleteAnswer(ctx context.Context, args []string) error {
	id, err := answerIDArg(args, "delanswer <answerid>")
	if err != nil {
		return err
	}
	if !a.isLoggedIn() {
		return api.ErrNotLoggedIn
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Delete answer #%d?", id), a.out)
	if err != nil || !ok {
		return err
	}

	if err := a.api.DeleteAnswer(ctx, id); err != nil {
		return a.check(err)
	}

	fmt.Fprintln(a.out, "Answer deleted")
	return nil
}

func answerIDArg(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, usageError(usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError(usage)
	}
	return id, nil
}
