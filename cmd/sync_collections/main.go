package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/saltpay/stencil/internal/workspace"
)

func main() {
	catalogPath := flag.String("catalog", "", "Path to a directory of collection exports (*.json)")
	workspaceFile := flag.String("workspace", "workspace.yaml", "Path to the workspace file")
	dryRun := flag.Bool("dry-run", false, "Print the changes without writing them")
	flag.Parse()

	if *catalogPath == "" {
		log.Fatal("--catalog flag is required")
	}

	ws, err := workspace.Load(*workspaceFile)
	if err != nil {
		log.Fatalf("Failed to load workspace: %v", err)
	}

	catalog, err := workspace.LoadCatalog(*catalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	fmt.Printf("Loaded %d collections and %d catalog entries\n\n", len(ws.Collections), len(catalog))

	counts := make(map[workspace.SyncStatus]int)
	for _, result := range workspace.Sync(ws, catalog) {
		counts[result.Status]++
		if result.Detail != "" {
			fmt.Printf("  [%s] %s - %s\n", result.Status, result.ID, result.Detail)
		} else {
			fmt.Printf("  [%s] %s\n", result.Status, result.ID)
		}
	}

	fmt.Printf("\nSummary: %d added, %d updated, %d unchanged, %d invalid\n",
		counts[workspace.SyncAdded], counts[workspace.SyncUpdated], counts[workspace.SyncUnchanged], counts[workspace.SyncInvalid])

	if counts[workspace.SyncAdded]+counts[workspace.SyncUpdated] == 0 {
		fmt.Println("\nNo changes to write")
		return
	}

	if *dryRun {
		fmt.Println("\nDry run, nothing written")
		return
	}

	if err := workspace.Save(*workspaceFile, ws); err != nil {
		log.Fatalf("Failed to save workspace: %v", err)
	}

	fmt.Printf("\nUpdated %s\n", *workspaceFile)
}
