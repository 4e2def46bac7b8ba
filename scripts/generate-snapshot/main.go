package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formwizard/pkg/editor"
	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const snapshotRendererName = "wizard-snapshot"

// snapshotRenderer writes the step snapshot as indented JSON.
type snapshotRenderer struct {
	path string
}

func (r *snapshotRenderer) Name() string {
	return snapshotRendererName
}

func (r *snapshotRenderer) ContentType() string {
	return "application/json"
}

func (r *snapshotRenderer) Render(_ context.Context, snap wizard.Snapshot, _ render.RenderOptions) ([]byte, error) {
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(r.path, payload, 0o644); err != nil {
		return nil, err
	}
	return payload, nil
}

func main() {
	var (
		preset     = flag.String("preset", "insurance", "bundled preset to snapshot")
		actions    = flag.String("do", "", "comma separated actions replayed before the snapshot")
		outputPath = flag.String("output", "insurance_snapshot.json", "output path for the serialized snapshot")
		editorOut  = flag.String("editor-golden", "pkg/editor/testdata/cover_details.golden.json", "output path for the seeded editor export (empty to skip)")
	)
	flag.Parse()

	ctx := context.Background()

	orch := orchestrator.New(
		orchestrator.WithRegistry(render.NewRegistry(&snapshotRenderer{path: *outputPath})),
		orchestrator.WithDefaultRenderer(snapshotRendererName),
	)

	req := orchestrator.Request{Preset: *preset}
	for _, action := range strings.Split(*actions, ",") {
		if action = strings.TrimSpace(action); action != "" {
			req.Actions = append(req.Actions, action)
		}
	}

	if _, err := orch.Generate(ctx, req); err != nil {
		fmt.Fprintf(os.Stderr, "failed to snapshot wizard: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Wrote wizard snapshot to %s\n", *outputPath)

	if *editorOut == "" {
		return
	}
	text, err := editor.New().ExportJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to export editor: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*editorOut, []byte(text), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write editor golden: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Wrote editor golden to %s\n", *editorOut)
}
