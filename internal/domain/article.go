package domain

import "time"

// SyncStatus is the lifecycle phase of a blog article relative to its remote
// counterpart.
type SyncStatus string

const (
	// StatusDraft means the article exists only locally.
	StatusDraft SyncStatus = "draft"
	// StatusSynced means the article has a confirmed remote record.
	StatusSynced SyncStatus = "synced"
)

// SyncState ties an article's status to its remote article id so the two can
// never disagree: a synced state always carries a non-zero remote id and a
// draft state never does. Construct it only through LocalOnly and Synced.
type SyncState struct {
	status   SyncStatus
	remoteID int64
}

// LocalOnly returns the draft state with no remote linkage.
func LocalOnly() SyncState {
	return SyncState{status: StatusDraft}
}

// Synced returns the synced state linked to the given remote article id.
func Synced(remoteID int64) (SyncState, error) {
	if remoteID <= 0 {
		return SyncState{}, &ValidationError{Field: "remote_article_id", Reason: "must be a positive id"}
	}
	return SyncState{status: StatusSynced, remoteID: remoteID}, nil
}

// Status returns the lifecycle phase.
func (s SyncState) Status() SyncStatus {
	if s.status == "" {
		return StatusDraft
	}
	return s.status
}

// RemoteID returns the linked remote article id; ok is false for drafts.
func (s SyncState) RemoteID() (id int64, ok bool) {
	return s.remoteID, s.status == StatusSynced
}

// IsSynced reports whether the article has a confirmed remote record.
func (s SyncState) IsSynced() bool {
	return s.status == StatusSynced
}

// Article is the local mirror of one remote blog post. Articles start as
// drafts, transition to synced on publish, and revert to drafts on
// unpublish/delete.
type Article struct {
	ID           int64      `json:"id"`
	StoreID      int64      `json:"store_id"`
	RemoteBlogID int64      `json:"remote_blog_id"`
	Sync         SyncState  `json:"-"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Summary      string     `json:"summary"`
	Tags         []string   `json:"tags"`
	Language     string     `json:"language"`
	SEOScore     float64    `json:"seo_score"`
	WordCount    int        `json:"word_count"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	SyncedAt     *time.Time `json:"synced_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Publish transitions a draft article into the synced state with the remote
// id the platform assigned. Publishing an already synced article is a state
// conflict and leaves the article unchanged.
func (a Article) Publish(remoteID int64, now time.Time) (Article, error) {
	if a.Sync.IsSynced() {
		return a, &StateConflictError{Op: "publish", Reason: "article is already published to the remote platform"}
	}
	state, err := Synced(remoteID)
	if err != nil {
		return a, err
	}
	a.Sync = state
	published := now
	synced := now
	a.PublishedAt = &published
	a.SyncedAt = &synced
	return a, nil
}

// Unpublish reverts a synced article to a local draft, clearing the remote
// linkage and the synced-at stamp. Unpublishing a draft is a state conflict.
func (a Article) Unpublish() (Article, error) {
	if !a.Sync.IsSynced() {
		return a, &StateConflictError{Op: "unpublish", Reason: "article has no remote record"}
	}
	a.Sync = LocalOnly()
	a.SyncedAt = nil
	return a, nil
}

// Resync re-stamps synced-at after a successful remote update of an already
// published article.
func (a Article) Resync(now time.Time) (Article, error) {
	if !a.Sync.IsSynced() {
		return a, &StateConflictError{Op: "resync", Reason: "article has no remote record"}
	}
	synced := now
	a.SyncedAt = &synced
	return a, nil
}
