package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"oricc/internal/pipeline"
	"oricc/internal/ui"
)

type linkOutcome struct {
	result pipeline.LinkResult
	err    error
}

func runLinkWithUI(ctx context.Context, title string, files []string, req *pipeline.LinkRequest) (pipeline.LinkResult, error) {
	if req == nil {
		return pipeline.LinkResult{}, fmt.Errorf("missing link request")
	}
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan linkOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.Link(ctx, &reqCopy)
		outcomeCh <- linkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
