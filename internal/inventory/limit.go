package inventory

// DefaultBatchLimit caps how many drafts a single import submits.
const DefaultBatchLimit = 50

// Limit keeps the first n drafts in order and reports how many were
// dropped. A non-positive n keeps nothing.
func Limit(drafts []ItemDraft, n int) ([]ItemDraft, int) {
	if n < 0 {
		n = 0
	}
	if len(drafts) <= n {
		return drafts, 0
	}
	kept := make([]ItemDraft, n)
	copy(kept, drafts[:n])
	return kept, len(drafts) - n
}
