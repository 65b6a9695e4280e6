package ui

import (
	"context"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"hubgrip/internal/api"
)

// LoadPreviewCmd fetches a project's readme for the embedded pager
func LoadPreviewCmd(projects *api.ProjectService, projectDomain string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchFetchTimeout)
		defer cancel()

		content, err := projects.Readme(ctx, projectDomain)
		return previewLoadedMsg{projectDomain: projectDomain, content: content, err: err}
	}
}

// pagerExec runs the readme through ov while the main program releases
// the terminal. ov draws its own screen; the stdio setters are required
// by the exec interface but unused.
type pagerExec struct {
	title   string
	content string
}

func (p *pagerExec) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(p.content))
	if err != nil {
		return err
	}
	root.Doc.Caption = p.title
	return root.Run()
}

func (p *pagerExec) SetStdin(io.Reader)  {}
func (p *pagerExec) SetStdout(io.Writer) {}
func (p *pagerExec) SetStderr(io.Writer) {}

// OpenPagerCmd hands the terminal to the pager until the user quits it
func OpenPagerCmd(title, content string) tea.Cmd {
	return tea.Exec(&pagerExec{title: title, content: content}, func(err error) tea.Msg {
		return pagerClosedMsg{err: err}
	})
}
