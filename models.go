package main

// --- Data Structures ---

// CellKind discriminates the closed set of raw cell value shapes coming out
// of the corpus loader. Malformed-cell handling is a switch over this, never
// a runtime type probe.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellOther
)

// CellValue is the typed value of one spreadsheet cell.
type CellValue struct {
	Kind CellKind
	Text string // set only for CellText
}

func TextCell(s string) CellValue { return CellValue{Kind: CellText, Text: s} }
func EmptyCell() CellValue        { return CellValue{Kind: CellEmpty} }
func OtherCell() CellValue        { return CellValue{Kind: CellOther} }

// RawCell is one tabular cell as supplied by the corpus loader.
// Indices are zero-based: column 0 holds contributor names, row 0 holds the
// seed tracks, row 1 holds the seed attribution, rows >= 2 hold songs.
type RawCell struct {
	SheetName string
	Column    int
	Row       int
	Value     CellValue
}

// ClusterKey uniquely identifies one cluster (one column of one sheet).
type ClusterKey struct {
	SheetName  string `json:"sheet"`
	WeekNumber int    `json:"week"`
}

// Cluster is one column of a sheet: a seed track plus everything submitted
// in response to it.
type Cluster struct {
	SheetName       string
	WeekNumber      int
	SeedTrack       string
	SeedContributor string
	Entries         []*SongEntry // ordered by Row ascending, seed first
}

// Key returns the cluster's identity key.
func (cl *Cluster) Key() ClusterKey {
	return ClusterKey{SheetName: cl.SheetName, WeekNumber: cl.WeekNumber}
}

// RoundDisplay is the human label used by the frontends ("<sheet>, Woche <n>").
func (cl *Cluster) RoundDisplay() string {
	return fmtRoundDisplay(cl.SheetName, cl.WeekNumber)
}

// SongEntry is one occurrence of a song inside a cluster. DisplayName keeps
// the original spelling verbatim.
type SongEntry struct {
	DisplayName string
	Contributor string
	IsSeed      bool
	Row         int
	Cluster     *Cluster // back-reference; an entry never outlives its cluster
}

// NormalizedGroup collects every occurrence of one normalized song key.
type NormalizedGroup struct {
	Key         string
	Variants    []string     // distinct original spellings, first-seen order
	Occurrences []*SongEntry // one per occurrence, in cell-sequence order
}

// Count is the total number of occurrences across all clusters.
func (g *NormalizedGroup) Count() int { return len(g.Occurrences) }

// SongIndex is an immutable snapshot of the corpus keyed by normalized song
// name. It is built once per corpus snapshot and shared read-only; no method
// mutates it after construction, so any number of readers may use the same
// value concurrently.
type SongIndex struct {
	groups   map[string]*NormalizedGroup
	keys     []string // all group keys, sorted ascending
	clusters []*Cluster
	sheets   []string
}

// Group returns the group for a normalized key, or nil.
func (idx *SongIndex) Group(key string) *NormalizedGroup { return idx.groups[key] }

// Keys returns all normalized keys in ascending order. Callers must not
// modify the returned slice.
func (idx *SongIndex) Keys() []string { return idx.keys }

// Clusters returns every cluster in deterministic (sheet, week) order.
func (idx *SongIndex) Clusters() []*Cluster { return idx.clusters }

// Sheets returns the distinct sheet names in ascending order.
func (idx *SongIndex) Sheets() []string { return idx.sheets }

// IndexDiagnostics reports everything the builder skipped or repaired.
// Nothing in here is fatal; the index is always usable.
type IndexDiagnostics struct {
	SkippedCells        int      `json:"skipped_cells"`
	MissingContributors int      `json:"missing_contributors"`
	DuplicateClusters   []string `json:"duplicate_clusters,omitempty"`
	OrphanCells         int      `json:"orphan_cells"`
}

// ScoredMatch is one search hit: an occurrence with the fuzzy score of its
// group against the query.
type ScoredMatch struct {
	Entry *SongEntry
	Score int
	Group *NormalizedGroup
}

// TopSong is one row of the occurrence ranking.
type TopSong struct {
	DisplayName string   `json:"name"`
	Normalized  string   `json:"normalized"`
	Count       int      `json:"count"`
	Variants    []string `json:"variants"`
}

// --- Storage Structures ---

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

type Feedback struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Contact     string `json:"contact,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// --- API Response Structures ---

// SearchResultSong is one row of a search response.
type SearchResultSong struct {
	Song         string `json:"song"`
	Contributor  string `json:"contributor"`
	Score        int    `json:"score"`
	Sheet        string `json:"sheet"`
	Week         int    `json:"week"`
	RoundDisplay string `json:"round_display"`
	SeedTrack    string `json:"seed_track"`
	IsSeed       bool   `json:"is_seed"`
}

// ConnectionCluster is one cluster in a connections response, songs in row
// order with the seed first.
type ConnectionCluster struct {
	Sheet           string           `json:"sheet"`
	Week            int              `json:"week"`
	RoundDisplay    string           `json:"round_display"`
	SeedTrack       string           `json:"seed_track"`
	SeedContributor string           `json:"seed_contributor"`
	Songs           []ConnectionSong `json:"songs"`
}

type ConnectionSong struct {
	Song        string `json:"song"`
	Contributor string `json:"contributor"`
	IsSeed      bool   `json:"is_seed"`
	Row         int    `json:"row"`
}

// ContributorSong is one row of a contributor's song listing.
type ContributorSong struct {
	Song         string `json:"song"`
	IsSeed       bool   `json:"is_seed"`
	Sheet        string `json:"sheet"`
	Week         int    `json:"week"`
	RoundDisplay string `json:"round_display"`
	SeedTrack    string `json:"seed_track"`
}

// CorpusStats summarizes the indexed corpus.
type CorpusStats struct {
	Sheets       int `json:"sheets"`
	Clusters     int `json:"clusters"`
	Entries      int `json:"entries"`
	Groups       int `json:"groups"`
	Contributors int `json:"contributors"`
}
