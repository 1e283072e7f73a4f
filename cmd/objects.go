package cmd

import (
	"github.com/huangsam/gitbloat/core"
	"github.com/huangsam/gitbloat/internal/contract"
	"github.com/spf13/cobra"
)

// objectsCmd lists the largest objects in the repository.
var objectsCmd = &cobra.Command{
	Use:   "objects [repo-path]",
	Short: "Show the largest objects anywhere in the repository's history.",
	Long: `Enumerate every object reachable from any ref and rank them by stored size.

Objects include blobs (file contents), trees and commits from every branch and
tag, so files that were deleted long ago still show up if history keeps them.
Use this to find what is bloating a clone before reaching for a history rewrite.

Each line shows the human size, the exact byte count, the object hash and the
path it was recorded under (empty for commits and the root tree).

Examples:
  # Top 20 objects of the current repository
  gitbloat objects

  # Top 5 objects of another checkout
  gitbloat objects ~/src/project --limit 5

  # Table view with colored size bands
  gitbloat objects --output table

  # Machine-readable output; progress goes to stderr
  gitbloat objects --output json --output-file objects.json

  # Record every scan for later comparison
  gitbloat objects --history-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLargestObjects(rootCtx, cfg, gitClient, historyManager); err != nil {
			contract.LogFatal("Cannot list git objects", err)
		}
	},
}
