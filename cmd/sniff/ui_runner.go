package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sniff/internal/driver"
	"sniff/internal/ui"
)

type runOutcome struct {
	result *driver.Result
	err    error
}

// runWithUI runs job in the background while the progress view consumes
// its events; the view quits once job returns.
func runWithUI(title string, files []string, job func(driver.ProgressSink) (*driver.Result, error)) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		res, err := job(driver.ChannelSink{Ch: events})
		outcomeCh <- runOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// view мог выйти раньше (ctrl+c); вычитываем остаток, иначе job заблокируется
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
