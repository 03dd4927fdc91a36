package dto

// InvalidateRequest asks for every cached entry of one entity to be
// evicted. Write-side collaborators send it after their ledger write
// commits.
type InvalidateRequest struct {
	EntityKind string `json:"entity_kind"`
	EntityID   string `json:"entity_id"`
}
