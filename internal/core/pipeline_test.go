// ABOUTME: End-to-end tests for the utterance pipeline
// ABOUTME: Utterance in, Action out, over a stub oracle and a fixed catalog

package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aivix/bench/internal/models"
	"github.com/google/go-cmp/cmp"
)

func TestProcessUtterance(t *testing.T) {
	catalog := testCatalog()
	greeting := "Привет, как дела?"
	p := NewPipeline(catalog, NewOracleAdapter(echoOracle(greeting), nil, nil), nil)

	tests := []struct {
		utterance string
		want      models.Action
	}{
		{"покажи блок HTTP Request", models.ShowBlockDetails(catalog.blocks[0])},
		{"покажи настройки блока HTTP Request", models.ShowBlockDetails(catalog.blocks[0])},
		{"открой блок Set", models.ShowBlockDetails(catalog.blocks[1])},
		{"open block Set-Variable", models.ShowBlockDetails(catalog.blocks[1])},
		{"покажи блок NoSuchBlock", models.BlockNotFound("NoSuchBlock")},
		{"покажи блоки", models.ShowBlocksPanel(
			[]models.BlockSummary{catalog.blocks[0].BlockSummary, catalog.blocks[1].BlockSummary, catalog.blocks[2].BlockSummary},
			catalog.categories)},
		{"запусти процесс", models.GenericCommand("запусти процесс")},
		{greeting, models.PlainResponse(greeting)},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			got, err := p.ProcessUtterance(context.Background(), tt.utterance)
			if err != nil {
				t.Fatalf("ProcessUtterance() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ProcessUtterance() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProcessUtterance_NoOracle(t *testing.T) {
	p := NewPipeline(testCatalog(), nil, nil)

	// Without an oracle only keyword commands are recognized
	got, err := p.ProcessUtterance(context.Background(), "покажи блок HTTP Request")
	if err != nil {
		t.Fatalf("ProcessUtterance() error = %v", err)
	}
	if diff := cmp.Diff(models.PlainResponse("покажи блок HTTP Request"), got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	got, err = p.ProcessUtterance(context.Background(), "открой блок Telegram")
	if err != nil {
		t.Fatalf("ProcessUtterance() error = %v", err)
	}
	if got.Kind != models.ActionShowBlockDetails || got.Block.Name != "Telegram" {
		t.Errorf("got %+v, want Telegram details", got)
	}
}

func TestProcessUtterance_OracleDownIsText(t *testing.T) {
	p := NewPipeline(testCatalog(), NewOracleAdapter(failingOracle(errors.New("timeout")), nil, nil), nil)

	got, err := p.ProcessUtterance(context.Background(), "покажи блоки")
	if err != nil {
		t.Fatalf("ProcessUtterance() error = %v", err)
	}
	if diff := cmp.Diff(models.PlainResponse("покажи блоки"), got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessUtterance_StoreError(t *testing.T) {
	p := NewPipeline(&memCatalog{err: errStore}, nil, nil)

	_, err := p.ProcessUtterance(context.Background(), "открой блок X")
	if !errors.Is(err, errStore) {
		t.Errorf("error = %v, want store error", err)
	}
}

func TestProcessUtterance_Idempotent(t *testing.T) {
	p := NewPipeline(testCatalog(), NewOracleAdapter(echoOracle(), nil, nil), nil)
	utterances := []string{"покажи блок HTTP Request", "покажи блоки", "запусти процесс", "покажи блок Nope"}

	for _, u := range utterances {
		first, err := p.ProcessUtterance(context.Background(), u)
		if err != nil {
			t.Fatalf("ProcessUtterance(%q) error = %v", u, err)
		}
		second, err := p.ProcessUtterance(context.Background(), u)
		if err != nil {
			t.Fatalf("ProcessUtterance(%q) error = %v", u, err)
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("ProcessUtterance(%q) not idempotent (-first +second):\n%s", u, diff)
		}
	}
}

func TestProcessUtterance_Concurrent(t *testing.T) {
	catalog := testCatalog()
	p := NewPipeline(catalog, NewOracleAdapter(echoOracle(), nil, nil), nil)
	want := models.ShowBlockDetails(catalog.blocks[2])

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.ProcessUtterance(context.Background(), "покажи блок Telegram")
			if err != nil {
				errs <- err
				return
			}
			if !cmp.Equal(want, got) {
				errs <- errors.New("unexpected action: " + string(got.Kind))
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
