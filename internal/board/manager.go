package board

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Keys under which the local state is kept in Storage.
const (
	KeyBoards       = "boards"
	KeyCurrentBoard = "current_board"
)

// Storage is the durable key-value store holding the local board collection
// and the current board pointer.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Notifier receives mutations after they have been applied and persisted.
// Implementations must not block; delivery is best effort.
type Notifier interface {
	BoardCreated(b Board)
	BoardDeleted(b Board)
	CardSaved(boardID string, c Card)
	CardUpdated(boardID string, c Card)
	CardDeleted(boardID, cardID string)
}

// RemoteSource lists the boards advertised by peers.
type RemoteSource interface {
	Boards(ctx context.Context) ([]Board, error)
}

// Bundle provides the static card list the default board is seeded from.
type Bundle interface {
	Cards(ctx context.Context) ([]Card, error)
}

// ConfirmFunc is asked before a board is removed. Returning false cancels.
type ConfirmFunc func(b Board) bool

type Manager struct {
	mu sync.Mutex

	store       Storage
	notifier    Notifier
	source      RemoteSource
	bundle      Bundle
	confirm     ConfirmFunc
	logger      *log.Logger
	now         func() time.Time
	defaultName string

	local     []Board
	remote    []Board
	currentID string
	// pendingID is a stored pointer to a remote board that is not known
	// until the first successful refresh.
	pendingID string
	cardQuery string
	degraded  bool
}

type Option func(*Manager)

func WithNotifier(n Notifier) Option {
	return func(m *Manager) {
		if n != nil {
			m.notifier = n
		}
	}
}

func WithRemoteSource(s RemoteSource) Option {
	return func(m *Manager) { m.source = s }
}

func WithBundle(b Bundle) Option {
	return func(m *Manager) { m.bundle = b }
}

func WithConfirm(f ConfirmFunc) Option {
	return func(m *Manager) { m.confirm = f }
}

func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithDefaultBoardName sets the name given to the default board when the
// store holds no boards yet.
func WithDefaultBoardName(name string) Option {
	return func(m *Manager) {
		if strings.TrimSpace(name) != "" {
			m.defaultName = strings.TrimSpace(name)
		}
	}
}

// Open loads the local state from store. An empty store yields a single
// default board that is seeded from the bundle on first view.
func Open(ctx context.Context, store Storage, opts ...Option) (*Manager, error) {
	m := &Manager{
		store:       store,
		notifier:    nopNotifier{},
		logger:      log.Default(),
		now:         func() time.Time { return time.Now().UTC() },
		defaultName: "Summer",
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.load(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) load(ctx context.Context) error {
	raw, ok, err := m.store.Get(ctx, KeyBoards)
	if err != nil {
		return fmt.Errorf("%w: load boards: %w", ErrStorage, err)
	}
	if ok && len(raw) > 0 {
		var boards []Board
		if err := json.Unmarshal(raw, &boards); err != nil {
			return fmt.Errorf("decode boards: %w", err)
		}
		for _, b := range boards {
			if b.Origin == OriginRemote {
				continue
			}
			b.Origin = OriginLocal
			if b.Cards == nil {
				b.Cards = []Card{}
			}
			m.local = append(m.local, b)
		}
	}
	if len(m.local) == 0 {
		m.local = []Board{{
			ID:             DefaultBoardID,
			Name:           m.defaultName,
			Cards:          []Card{},
			Origin:         OriginLocal,
			SeedFromBundle: true,
			Keywords:       KeywordsFromName(m.defaultName),
		}}
	}

	raw, ok, err = m.store.Get(ctx, KeyCurrentBoard)
	if err != nil {
		return fmt.Errorf("%w: load current board: %w", ErrStorage, err)
	}
	if ok {
		m.currentID = strings.TrimSpace(string(raw))
	}
	if _, found := m.findLocked(m.currentID); !found {
		if strings.HasPrefix(m.currentID, remotePrefix) {
			m.pendingID = m.currentID
		}
		m.currentID = m.local[0].ID
	}
	return nil
}

func (m *Manager) newID() string {
	return ulid.MustNew(ulid.Timestamp(m.now()), rand.Reader).String()
}

func (m *Manager) localIndex(id string) int {
	return slices.IndexFunc(m.local, func(b Board) bool { return b.ID == id })
}

func (m *Manager) remoteIndex(id string) int {
	return slices.IndexFunc(m.remote, func(b Board) bool { return b.ID == id })
}

func (m *Manager) findLocked(id string) (Board, bool) {
	if id == "" {
		return Board{}, false
	}
	if i := m.localIndex(id); i >= 0 {
		return m.local[i], true
	}
	if i := m.remoteIndex(id); i >= 0 {
		return m.remote[i], true
	}
	return Board{}, false
}

func (m *Manager) saveLocked(ctx context.Context) error {
	data, err := json.Marshal(m.local)
	if err != nil {
		return fmt.Errorf("encode boards: %w", err)
	}
	if err := m.store.Put(ctx, KeyBoards, data); err != nil {
		return err
	}
	pointer := m.currentID
	if m.pendingID != "" {
		pointer = m.pendingID
	}
	return m.store.Put(ctx, KeyCurrentBoard, []byte(pointer))
}

// persistLocked writes the local snapshot. Only the first failure after a
// successful save is returned; later ones are logged until the store recovers.
func (m *Manager) persistLocked(ctx context.Context) error {
	err := m.saveLocked(ctx)
	if err == nil {
		m.degraded = false
		return nil
	}
	m.logger.Printf("board: persist failed: %v", err)
	if m.degraded {
		return nil
	}
	m.degraded = true
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// CreateBoard appends a new local board and makes it current.
func (m *Manager) CreateBoard(ctx context.Context, name string) (Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Board{}, fmt.Errorf("%w: board name is empty", ErrValidation)
	}

	m.mu.Lock()
	b := Board{
		ID:       localPrefix + m.newID(),
		Name:     name,
		Cards:    []Card{},
		Origin:   OriginLocal,
		Keywords: KeywordsFromName(name),
	}
	m.local = append(m.local, b)
	m.currentID = b.ID
	m.pendingID = ""
	m.cardQuery = ""
	err := m.persistLocked(ctx)
	snap := b.clone()
	m.mu.Unlock()

	m.notifier.BoardCreated(snap)
	return snap, err
}

// DeleteBoard removes a local board after confirmation. Unknown ids are a
// no-op. Remote boards and the last local board cannot be deleted.
func (m *Manager) DeleteBoard(ctx context.Context, id string) error {
	m.mu.Lock()
	target, err := m.deletableLocked(id)
	m.mu.Unlock()
	if err != nil || target == nil {
		return err
	}

	if m.confirm != nil && !m.confirm(*target) {
		return fmt.Errorf("%w: deletion of board %q was not confirmed", ErrCanceled, target.Name)
	}

	m.mu.Lock()
	// Re-check: the collection may have changed while waiting for confirmation.
	if _, err := m.deletableLocked(id); err != nil {
		m.mu.Unlock()
		return err
	}
	i := m.localIndex(id)
	if i < 0 {
		m.mu.Unlock()
		return nil
	}
	m.local = slices.Delete(m.local, i, i+1)
	if m.currentID == id {
		m.currentID = m.local[0].ID
		m.cardQuery = ""
	}
	err = m.persistLocked(ctx)
	m.mu.Unlock()

	if !target.SeedFromBundle {
		m.notifier.BoardDeleted(*target)
	}
	return err
}

// CanDelete reports the error DeleteBoard would return before asking for
// confirmation. Unknown ids yield nil.
func (m *Manager) CanDelete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.deletableLocked(id)
	return err
}

func (m *Manager) deletableLocked(id string) (*Board, error) {
	if m.remoteIndex(id) >= 0 {
		return nil, fmt.Errorf("%w: board %q is remote", ErrForbidden, id)
	}
	i := m.localIndex(id)
	if i < 0 {
		return nil, nil
	}
	if len(m.local) <= 1 {
		return nil, fmt.Errorf("%w: at least one local board must remain", ErrForbidden)
	}
	b := m.local[i].clone()
	return &b, nil
}

// SwitchCurrentBoard selects a local or remote board and clears the card query.
func (m *Manager) SwitchCurrentBoard(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.findLocked(id); !ok {
		return fmt.Errorf("%w: board %q", ErrNotFound, id)
	}
	m.currentID = id
	m.pendingID = ""
	m.cardQuery = ""
	return m.persistLocked(ctx)
}

func (m *Manager) CurrentBoardID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentID
}

// CurrentBoard resolves the current pointer, local boards first.
func (m *Manager) CurrentBoard() (Board, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.findLocked(m.currentID)
	if !ok {
		return Board{}, false
	}
	return b.clone(), true
}

func (m *Manager) Board(id string) (Board, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.findLocked(id)
	if !ok {
		return Board{}, false
	}
	return b.clone(), true
}

// Boards lists local boards followed by remote boards. Callers may rely on
// this order for index-based lookups.
func (m *Manager) Boards() []Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Board, 0, len(m.local)+len(m.remote))
	for _, b := range m.local {
		out = append(out, b.clone())
	}
	for _, b := range m.remote {
		out = append(out, b.clone())
	}
	return out
}

func (m *Manager) SearchBoards(query string) []Board {
	return FilterBoards(m.Boards(), query)
}

func (m *Manager) SetCardQuery(query string) {
	m.mu.Lock()
	m.cardQuery = query
	m.mu.Unlock()
}

func (m *Manager) CardQuery() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cardQuery
}

// CurrentCards returns the current board's cards filtered by the card query.
func (m *Manager) CurrentCards() []Card {
	m.mu.Lock()
	b, ok := m.findLocked(m.currentID)
	query := m.cardQuery
	var cards []Card
	if ok {
		cards = b.clone().Cards
	}
	m.mu.Unlock()
	return FilterCards(cards, query)
}

func validateCard(in CardInput) error {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Author == "" {
		missing = append(missing, "author")
	}
	if in.Content == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s must not be empty", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// mutableIndexLocked resolves a local board for a card mutation.
func (m *Manager) mutableIndexLocked(boardID string) (int, error) {
	if m.remoteIndex(boardID) >= 0 {
		return -1, fmt.Errorf("%w: board %q is remote", ErrForbidden, boardID)
	}
	i := m.localIndex(boardID)
	if i < 0 {
		return -1, fmt.Errorf("%w: board %q", ErrNotFound, boardID)
	}
	return i, nil
}

// AddCard appends a new card to a local board and notifies the gateway.
func (m *Manager) AddCard(ctx context.Context, boardID string, in CardInput) (Card, error) {
	in = in.trimmed()

	m.mu.Lock()
	i, err := m.mutableIndexLocked(boardID)
	if err != nil {
		m.mu.Unlock()
		return Card{}, err
	}
	if err := validateCard(in); err != nil {
		m.mu.Unlock()
		return Card{}, err
	}
	c := Card{
		ID:        m.newID(),
		Title:     in.Title,
		Author:    in.Author,
		Content:   in.Content,
		Timestamp: m.now(),
	}
	m.local[i].Cards = append(m.local[i].Cards, c)
	err = m.persistLocked(ctx)
	m.mu.Unlock()

	m.notifier.CardSaved(boardID, c.clone())
	return c, err
}

// EditCard overwrites the text fields of an existing card and refreshes its
// timestamp. Id, votes, comments and locator are kept.
func (m *Manager) EditCard(ctx context.Context, boardID, cardID string, in CardInput) (Card, error) {
	in = in.trimmed()

	m.mu.Lock()
	i, err := m.mutableIndexLocked(boardID)
	if err != nil {
		m.mu.Unlock()
		return Card{}, err
	}
	j := slices.IndexFunc(m.local[i].Cards, func(c Card) bool { return c.ID == cardID })
	if j < 0 {
		m.mu.Unlock()
		return Card{}, fmt.Errorf("%w: card %q in board %q", ErrNotFound, cardID, boardID)
	}
	if err := validateCard(in); err != nil {
		m.mu.Unlock()
		return Card{}, err
	}
	c := &m.local[i].Cards[j]
	c.Title = in.Title
	c.Author = in.Author
	c.Content = in.Content
	c.Timestamp = m.now()
	snap := c.clone()
	err = m.persistLocked(ctx)
	m.mu.Unlock()

	m.notifier.CardUpdated(boardID, snap)
	return snap, err
}

// DeleteCard removes a card. Missing boards or cards are a no-op.
func (m *Manager) DeleteCard(ctx context.Context, boardID, cardID string) error {
	m.mu.Lock()
	i, err := m.mutableIndexLocked(boardID)
	if err != nil {
		m.mu.Unlock()
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	j := slices.IndexFunc(m.local[i].Cards, func(c Card) bool { return c.ID == cardID })
	if j < 0 {
		m.mu.Unlock()
		return nil
	}
	m.local[i].Cards = slices.Delete(m.local[i].Cards, j, j+1)
	err = m.persistLocked(ctx)
	m.mu.Unlock()

	m.notifier.CardDeleted(boardID, cardID)
	return err
}

// EnsureDefaultBoardSeeded fills the default board from the bundle the first
// time it is viewed. A board that was seeded before, or already holds cards,
// is left alone; a changed bundle is never re-read. Bundle failures are
// logged and leave the board empty.
func (m *Manager) EnsureDefaultBoardSeeded(ctx context.Context) error {
	if m.bundle == nil {
		return nil
	}
	m.mu.Lock()
	pending := m.seedTargetLocked() >= 0
	m.mu.Unlock()
	if !pending {
		return nil
	}

	cards, err := m.bundle.Cards(ctx)
	if err != nil {
		m.logger.Printf("board: load bundled cards failed: %v", err)
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.seedTargetLocked()
	if i < 0 {
		return nil
	}
	seeded := make([]Card, len(cards))
	for idx, c := range cards {
		c = c.clone()
		if strings.TrimSpace(c.ID) == "" {
			c.ID = fmt.Sprintf("json-card-%d", idx)
		}
		if c.Timestamp.IsZero() {
			c.Timestamp = m.now()
		}
		seeded[idx] = c
	}
	m.local[i].Cards = seeded
	m.local[i].Seeded = true
	return m.persistLocked(ctx)
}

func (m *Manager) seedTargetLocked() int {
	return slices.IndexFunc(m.local, func(b Board) bool {
		return b.SeedFromBundle && !b.Seeded && len(b.Cards) == 0
	})
}

// RefreshRemoteBoards replaces the remote collection with a fresh fetch and
// returns the number of remote boards held afterwards. Fetch failures are
// logged and keep the previous collection.
func (m *Manager) RefreshRemoteBoards(ctx context.Context) int {
	if m.source == nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		return len(m.remote)
	}

	fetched, err := m.source.Boards(ctx)
	if err != nil {
		m.logger.Printf("board: remote refresh failed: %v", err)
		m.mu.Lock()
		defer m.mu.Unlock()
		return len(m.remote)
	}

	remote := make([]Board, 0, len(fetched))
	for _, b := range fetched {
		b = b.clone()
		b.Origin = OriginRemote
		b.Cards = []Card{}
		b.SeedFromBundle = false
		if !strings.HasPrefix(b.ID, remotePrefix) {
			b.ID = remotePrefix + b.ID
		}
		remote = append(remote, b)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.remote = remote
	reset := false
	if m.pendingID != "" {
		if m.remoteIndex(m.pendingID) >= 0 {
			m.currentID = m.pendingID
		} else {
			reset = true
		}
		m.pendingID = ""
	}
	if _, ok := m.findLocked(m.currentID); !ok {
		m.currentID = m.local[0].ID
		m.cardQuery = ""
		reset = true
	}
	if reset {
		if err := m.persistLocked(ctx); err != nil {
			m.logger.Printf("board: %v", err)
		}
	}
	return len(m.remote)
}

type nopNotifier struct{}

func (nopNotifier) BoardCreated(Board)         {}
func (nopNotifier) BoardDeleted(Board)         {}
func (nopNotifier) CardSaved(string, Card)     {}
func (nopNotifier) CardUpdated(string, Card)   {}
func (nopNotifier) CardDeleted(string, string) {}
