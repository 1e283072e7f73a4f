package schema

// EnrichedObjectResult adds presentation data to an ObjectRecord.
type EnrichedObjectResult struct {
	Rank      int      `json:"rank"`
	HumanSize string   `json:"size_human"`
	Band      SizeBand `json:"band"`
	ObjectRecord
}

// ScanSummary is the JSON document written for --output json.
type ScanSummary struct {
	RepoPath        string                 `json:"repo_path"`
	TotalObjects    int                    `json:"total_objects"`
	ResolvedObjects int                    `json:"resolved_objects"`
	SkippedObjects  int                    `json:"skipped_objects"`
	ManifestDigest  string                 `json:"manifest_digest"`
	DurationMs      int64                  `json:"duration_ms"`
	Objects         []EnrichedObjectResult `json:"objects"`
}
