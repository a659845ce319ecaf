package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/meikuraledutech/workflow"
	"github.com/meikuraledutech/workflow/kv"
)

func main() {
	ctx := context.Background()
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})

	// Any workflow.Store works here; the memory one needs no setup.
	editor, err := workflow.Open(ctx, kv.NewMemory(), workflow.Options{Logger: logger})
	if err != nil {
		logger.Fatal("open", "err", err)
	}

	// ── Templates ─────────────────────────────────────────────────────
	start, err := editor.AddTemplate(ctx, "Start")
	if err != nil {
		logger.Fatal("add template", "err", err)
	}
	review, err := editor.AddTemplate(ctx, "Review")
	if err != nil {
		logger.Fatal("add template", "err", err)
	}
	fmt.Println("templates:")
	printJSON(editor.Templates())

	// ── Drop two nodes on the canvas ──────────────────────────────────
	n1, err := editor.Drop(ctx, start, workflow.Position{X: 300, Y: 250})
	if err != nil {
		logger.Fatal("drop", "err", err)
	}
	n2, err := editor.Drop(ctx, review, workflow.Position{X: 500, Y: 250})
	if err != nil {
		logger.Fatal("drop", "err", err)
	}

	// ── Connect them, then try to close the loop ──────────────────────
	if _, err := editor.Connect(ctx, n1.ID, n2.ID); err != nil {
		logger.Fatal("connect", "err", err)
	}
	_, err = editor.Connect(ctx, n2.ID, n1.ID)
	if errors.Is(err, workflow.ErrCycleDetected) {
		fmt.Printf("\nrejected: %s\n", workflow.NoticeFor(err).Message)
	}

	data, err := editor.Export()
	if err != nil {
		logger.Fatal("export", "err", err)
	}
	fmt.Printf("\n%s:\n%s\n", workflow.ExportFileName, data)

	// ── Delete the first node and its connection ──────────────────────
	if _, err := editor.Select(workflow.SelectNode, n1.ID); err != nil {
		logger.Fatal("select", "err", err)
	}
	if _, err := editor.DeleteSelected(ctx); err != nil {
		logger.Fatal("delete", "err", err)
	}
	fmt.Println("\nafter delete:")
	printJSON(editor.Graph())

	// ── Import the earlier export back ────────────────────────────────
	if err := editor.Import(ctx, data); err != nil {
		logger.Fatal("import", "err", err)
	}
	fmt.Printf("\n%s\n", workflow.NoticeImported.Message)
	printJSON(editor.Graph())
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
