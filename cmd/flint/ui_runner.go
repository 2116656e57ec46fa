package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"flint/internal/buildpipeline"
	"flint/internal/ui"
)

type buildOutcome struct {
	result buildpipeline.BuildResult
	err    error
}

type emitOutcome struct {
	result buildpipeline.EmitResult
	err    error
}

func runBuildWithUI(ctx context.Context, title string, files []string, req *buildpipeline.BuildRequest) (buildpipeline.BuildResult, error) {
	if req == nil {
		return buildpipeline.BuildResult{}, fmt.Errorf("missing build request")
	}
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := buildpipeline.Build(ctx, &reqCopy)
		outcomeCh <- buildOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// После досрочного выхода из UI (ctrl+c) конвейер ещё может слать
	// события; без дренажа отправка в полный канал заблокирует его
	// навсегда и outcomeCh не дождёмся.
	go buildpipeline.DrainEvents(events)
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

func runEmitWithUI(ctx context.Context, title string, files []string, req *buildpipeline.EmitRequest) (buildpipeline.EmitResult, error) {
	if req == nil {
		return buildpipeline.EmitResult{}, fmt.Errorf("missing emit request")
	}
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan emitOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := buildpipeline.Emit(ctx, &reqCopy)
		outcomeCh <- emitOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// Та же страховка, что и в runBuildWithUI: дренируем остаток
	// событий, чтобы конвейер не завис на отправке.
	go buildpipeline.DrainEvents(events)
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
