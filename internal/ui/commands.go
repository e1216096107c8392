package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ragdesk/internal/busy"
	"github.com/five82/ragdesk/internal/chat"
	"github.com/five82/ragdesk/internal/explore"
	"github.com/five82/ragdesk/internal/ingest"
	"github.com/five82/ragdesk/internal/logtail"
	"github.com/five82/ragdesk/internal/outcome"
	"github.com/five82/ragdesk/internal/ragapi"
	"github.com/five82/ragdesk/internal/registry"
	"github.com/five82/ragdesk/internal/state"
)

// Every backend result carries the generation it was started in. A client
// reload bumps the generation and older results are dropped on arrival.

type tickMsg time.Time

type snapshotMsg state.Snapshot

type refreshCollectionsMsg struct{ gen int }

type collectionsMsg struct {
	gen   int
	names []string
	err   error
}

type collectionOp int

const (
	opCreate collectionOp = iota
	opDelete
)

type collectionOpMsg struct {
	gen int
	tok busy.Token
	op  collectionOp
	res outcome.Outcome
}

type stagedMsg struct {
	gen  int
	tok  busy.Token
	path string
	file *ingest.StagedFile
	err  error
}

type ingestedMsg struct {
	gen int
	tok busy.Token
	res outcome.Outcome
}

type fileChangedMsg struct {
	gen     int
	path    string
	changes <-chan struct{}
}

type chatReplyMsg struct {
	gen  int
	tok  busy.Token
	turn *chat.Turn
	res  outcome.Outcome
}

type sessionClearedMsg struct {
	gen int
	res outcome.Outcome
}

type sessionMsg struct {
	gen     int
	content string
	err     error
}

type exploreLoadedMsg struct {
	gen        int
	tok        busy.Token
	collection string
	resp       *ragapi.ExploreResponse
	res        outcome.Outcome
}

type chunkOpMsg struct {
	gen int
	tok busy.Token
	res outcome.Outcome
}

type consoleMsg struct {
	entries []logtail.Entry
	err     error
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func delayedCollectionRefresh(gen int) tea.Cmd {
	return tea.Tick(CollectionRefreshDelay, func(time.Time) tea.Msg {
		return refreshCollectionsMsg{gen: gen}
	})
}

func refreshCollectionsCmd(ctx context.Context, reg *registry.Registry, gen int) tea.Cmd {
	return func() tea.Msg {
		names, err := reg.Refresh(ctx)
		return collectionsMsg{gen: gen, names: names, err: err}
	}
}

func createCollectionCmd(ctx context.Context, reg *registry.Registry, gen int, tok busy.Token, name string) tea.Cmd {
	return func() tea.Msg {
		return collectionOpMsg{gen: gen, tok: tok, op: opCreate, res: reg.Create(ctx, name)}
	}
}

func deleteCollectionCmd(ctx context.Context, reg *registry.Registry, gen int, name string) tea.Cmd {
	return func() tea.Msg {
		return collectionOpMsg{gen: gen, op: opDelete, res: reg.Delete(ctx, name)}
	}
}

func extractCmd(ctx context.Context, ex *ingest.Extractor, gen int, tok busy.Token, path string) tea.Cmd {
	return func() tea.Msg {
		file, err := ex.Extract(ctx, path)
		return stagedMsg{gen: gen, tok: tok, path: path, file: file, err: err}
	}
}

func ingestCmd(ctx context.Context, sub *ingest.Submitter, gen int, tok busy.Token, file *ingest.StagedFile, collection string, chunkSize *int) tea.Cmd {
	return func() tea.Msg {
		return ingestedMsg{gen: gen, tok: tok, res: sub.Ingest(ctx, file, collection, chunkSize)}
	}
}

// waitForChange blocks until the watched file changes. A closed channel
// ends the watch without a message.
func waitForChange(gen int, path string, changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return fileChangedMsg{gen: gen, path: path, changes: changes}
	}
}

func sendChatCmd(ctx context.Context, client *chat.Client, gen int, tok busy.Token, message, collection string, chunkCount int) tea.Cmd {
	return func() tea.Msg {
		turn, res := client.Send(ctx, message, collection, chunkCount)
		return chatReplyMsg{gen: gen, tok: tok, turn: turn, res: res}
	}
}

func clearSessionCmd(ctx context.Context, client *chat.Client, gen int) tea.Cmd {
	return func() tea.Msg {
		return sessionClearedMsg{gen: gen, res: client.ClearSession(ctx)}
	}
}

func fetchSessionCmd(ctx context.Context, client *chat.Client, gen int) tea.Cmd {
	return func() tea.Msg {
		content, err := client.FetchSession(ctx)
		return sessionMsg{gen: gen, content: content, err: err}
	}
}

func loadExploreCmd(ctx context.Context, svc *explore.Service, gen int, tok busy.Token, collection string) tea.Cmd {
	return func() tea.Msg {
		resp, res := svc.Load(ctx, collection)
		return exploreLoadedMsg{gen: gen, tok: tok, collection: collection, resp: resp, res: res}
	}
}

func saveChunkCmd(ctx context.Context, svc *explore.Service, gen int, tok busy.Token, collection string, ed explore.Editor) tea.Cmd {
	return func() tea.Msg {
		return chunkOpMsg{gen: gen, tok: tok, res: svc.Save(ctx, collection, ed)}
	}
}

func deleteChunkCmd(ctx context.Context, svc *explore.Service, gen int, tok busy.Token, collection string, ed explore.Editor) tea.Cmd {
	return func() tea.Msg {
		return chunkOpMsg{gen: gen, tok: tok, res: svc.Delete(ctx, collection, ed)}
	}
}

func consoleCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.Tail(path, ConsoleTailLines)
		return consoleMsg{entries: entries, err: err}
	}
}
