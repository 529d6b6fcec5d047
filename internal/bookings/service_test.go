package bookings

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"sync"
	"testing"

	"ticketly/pkg/logger"

	"github.com/google/uuid"
)

// fakeGuard is an in-memory SeatGuard safe for concurrent use
type fakeGuard struct {
	mu     sync.Mutex
	claims map[uuid.UUID]map[string]struct{}
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{claims: make(map[uuid.UUID]map[string]struct{})}
}

func (g *fakeGuard) TryClaim(ctx context.Context, showID uuid.UUID, seat string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	set, ok := g.claims[showID]
	if !ok {
		set = make(map[string]struct{})
		g.claims[showID] = set
	}
	if _, taken := set[seat]; taken {
		return false, nil
	}
	set[seat] = struct{}{}
	return true, nil
}

func (g *fakeGuard) Release(ctx context.Context, showID uuid.UUID, seats []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, seat := range seats {
		delete(g.claims[showID], seat)
	}
	return nil
}

func (g *fakeGuard) ListClaimed(ctx context.Context, showID uuid.UUID) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var seats []string
	for seat := range g.claims[showID] {
		seats = append(seats, seat)
	}
	sort.Strings(seats)
	return seats, nil
}

func (g *fakeGuard) Seed(ctx context.Context, showID uuid.UUID, seats []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	set, ok := g.claims[showID]
	if !ok {
		set = make(map[string]struct{})
		g.claims[showID] = set
	}
	for _, seat := range seats {
		set[seat] = struct{}{}
	}
	return nil
}

func (g *fakeGuard) snapshot(showID uuid.UUID) []string {
	seats, _ := g.ListClaimed(context.Background(), showID)
	return seats
}

// fakeRepo is an in-memory Repository enforcing the uniqueness constraint
type fakeRepo struct {
	mu         sync.Mutex
	rows       []Booking
	commitHook func() error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{}
}

func (r *fakeRepo) key(showID uuid.UUID, seat string) string {
	return showID.String() + "/" + seat
}

func (r *fakeRepo) FindExistingSeats(ctx context.Context, showID uuid.UUID, seats []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		want[s] = struct{}{}
	}
	var taken []string
	for _, row := range r.rows {
		if row.ShowID != showID {
			continue
		}
		if _, ok := want[row.SeatLabel]; ok {
			taken = append(taken, row.SeatLabel)
		}
	}
	return taken, nil
}

func (r *fakeRepo) ListBookedSeats(ctx context.Context, showID uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var seats []string
	for _, row := range r.rows {
		if row.ShowID == showID {
			seats = append(seats, row.SeatLabel)
		}
	}
	sort.Strings(seats)
	return seats, nil
}

func (r *fakeRepo) CommitBooking(ctx context.Context, rows []Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.commitHook != nil {
		if err := r.commitHook(); err != nil {
			return err
		}
	}
	existing := make(map[string]struct{}, len(r.rows))
	for _, row := range r.rows {
		existing[r.key(row.ShowID, row.SeatLabel)] = struct{}{}
	}
	for _, row := range rows {
		if _, dup := existing[r.key(row.ShowID, row.SeatLabel)]; dup {
			return ErrSeatConstraint
		}
	}
	r.rows = append(r.rows, rows...)
	return nil
}

func (r *fakeRepo) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []Booking
	for _, row := range r.rows {
		if row.UserID == userID {
			result = append(result, row)
		}
	}
	return result, nil
}

// preload inserts committed rows directly, bypassing the hook
func (r *fakeRepo) preload(showID uuid.UUID, seats ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, seat := range seats {
		r.rows = append(r.rows, Booking{
			ID:        uuid.New(),
			ShowID:    showID,
			SeatLabel: seat,
			Reference: "TKT-PRELOAD",
		})
	}
}

type fakeCatalog struct {
	eventID uuid.UUID
	show    ShowInfo
}

func (c *fakeCatalog) EventExists(ctx context.Context, eventID uuid.UUID) (bool, error) {
	return eventID == c.eventID, nil
}

func (c *fakeCatalog) GetShowForEvent(ctx context.Context, showID, eventID uuid.UUID) (*ShowInfo, error) {
	if showID != c.show.ID || eventID != c.eventID {
		return nil, ErrShowNotFound
	}
	show := c.show
	return &show, nil
}

func (c *fakeCatalog) GetShow(ctx context.Context, showID uuid.UUID) (*ShowInfo, error) {
	if showID != c.show.ID {
		return nil, ErrShowNotFound
	}
	show := c.show
	return &show, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	received []BookingNotification
	err      error
}

func (n *fakeNotifier) NotifyBookingConfirmed(ctx context.Context, b BookingNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.received = append(n.received, b)
	return nil
}

type fixture struct {
	service  Service
	guard    *fakeGuard
	repo     *fakeRepo
	notifier *fakeNotifier
	eventID  uuid.UUID
	showID   uuid.UUID
	userID   uuid.UUID
}

func newFixture() *fixture {
	eventID := uuid.New()
	showID := uuid.New()
	guard := newFakeGuard()
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	catalog := &fakeCatalog{
		eventID: eventID,
		show:    ShowInfo{ID: showID, EventID: eventID, TotalSeats: 80},
	}
	return &fixture{
		service:  NewService(repo, guard, catalog, notifier, logger.New()),
		guard:    guard,
		repo:     repo,
		notifier: notifier,
		eventID:  eventID,
		showID:   showID,
		userID:   uuid.New(),
	}
}

func (f *fixture) request(seats ...string) BookingRequest {
	return BookingRequest{EventID: f.eventID, ShowID: f.showID, Seats: seats}
}

var referencePattern = regexp.MustCompile(`^TKT-[A-Z0-9]{8}$`)

func TestBookSeatsSuccess(t *testing.T) {
	f := newFixture()

	result, err := f.service.BookSeats(context.Background(), f.userID, f.request("A1", "A2"))
	if err != nil {
		t.Fatalf("BookSeats failed: %v", err)
	}

	if !referencePattern.MatchString(result.Reference) {
		t.Errorf("reference %q does not match %s", result.Reference, referencePattern)
	}
	if !reflect.DeepEqual(result.Seats, []string{"A1", "A2"}) {
		t.Errorf("result seats = %v, want [A1 A2]", result.Seats)
	}

	committed, _ := f.repo.ListBookedSeats(context.Background(), f.showID)
	if !reflect.DeepEqual(committed, []string{"A1", "A2"}) {
		t.Errorf("committed seats = %v, want [A1 A2]", committed)
	}

	if claimed := f.guard.snapshot(f.showID); !reflect.DeepEqual(claimed, []string{"A1", "A2"}) {
		t.Errorf("guard claims = %v, want [A1 A2]", claimed)
	}

	if len(f.notifier.received) != 1 {
		t.Fatalf("notifier received %d notifications, want 1", len(f.notifier.received))
	}
	if got := f.notifier.received[0].Reference; got != result.Reference {
		t.Errorf("notification reference = %q, want %q", got, result.Reference)
	}
}

func TestBookSeatsNormalizesLabels(t *testing.T) {
	f := newFixture()

	result, err := f.service.BookSeats(context.Background(), f.userID, f.request("  a1 ", "b10"))
	if err != nil {
		t.Fatalf("BookSeats failed: %v", err)
	}
	if !reflect.DeepEqual(result.Seats, []string{"A1", "B10"}) {
		t.Errorf("result seats = %v, want [A1 B10]", result.Seats)
	}

	// The same seat with different casing must now conflict
	_, err = f.service.BookSeats(context.Background(), uuid.New(), f.request("A1"))
	var conflict *SeatsAlreadyBookedError
	if !errors.As(err, &conflict) {
		t.Fatalf("rebooking A1 = %v, want SeatsAlreadyBookedError", err)
	}
}

func TestBookSeatsUnknownEventAndShow(t *testing.T) {
	f := newFixture()

	req := f.request("A1")
	req.EventID = uuid.New()
	if _, err := f.service.BookSeats(context.Background(), f.userID, req); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("unknown event = %v, want ErrEventNotFound", err)
	}

	req = f.request("A1")
	req.ShowID = uuid.New()
	if _, err := f.service.BookSeats(context.Background(), f.userID, req); !errors.Is(err, ErrShowNotFound) {
		t.Errorf("unknown show = %v, want ErrShowNotFound", err)
	}
}

func TestBookSeatsValidationErrorsLeaveGuardUntouched(t *testing.T) {
	f := newFixture()

	cases := [][]string{
		{},
		{"A1", "A1"},
		{"Z9"},
	}
	for _, seats := range cases {
		if _, err := f.service.BookSeats(context.Background(), f.userID, f.request(seats...)); err == nil {
			t.Errorf("BookSeats(%v) succeeded, want error", seats)
		}
	}

	if claimed := f.guard.snapshot(f.showID); len(claimed) != 0 {
		t.Errorf("guard claims = %v, want none", claimed)
	}
}

func TestBookSeatsAlreadyCommitted(t *testing.T) {
	f := newFixture()
	f.repo.preload(f.showID, "B1", "B2")

	_, err := f.service.BookSeats(context.Background(), f.userID, f.request("B1", "B2", "B3"))
	var conflict *SeatsAlreadyBookedError
	if !errors.As(err, &conflict) {
		t.Fatalf("got %v, want SeatsAlreadyBookedError", err)
	}
	if !reflect.DeepEqual(conflict.Labels, []string{"B1", "B2"}) {
		t.Errorf("conflict labels = %v, want [B1 B2]", conflict.Labels)
	}

	// Nothing was claimed for a doomed booking
	if claimed := f.guard.snapshot(f.showID); len(claimed) != 0 {
		t.Errorf("guard claims = %v, want none", claimed)
	}
}

func TestBookSeatsGuardConflictReleasesPartialClaims(t *testing.T) {
	f := newFixture()
	if err := f.guard.Seed(context.Background(), f.showID, []string{"A2"}); err != nil {
		t.Fatal(err)
	}

	_, err := f.service.BookSeats(context.Background(), f.userID, f.request("A1", "A2", "A3"))
	var conflict *SeatsAlreadyBookedError
	if !errors.As(err, &conflict) {
		t.Fatalf("got %v, want SeatsAlreadyBookedError", err)
	}
	if !reflect.DeepEqual(conflict.Labels, []string{"A2"}) {
		t.Errorf("conflict labels = %v, want [A2]", conflict.Labels)
	}

	// Only the pre-existing claim survives
	if claimed := f.guard.snapshot(f.showID); !reflect.DeepEqual(claimed, []string{"A2"}) {
		t.Errorf("guard claims = %v, want [A2]", claimed)
	}
}

func TestBookSeatsConstraintViolationCompensates(t *testing.T) {
	f := newFixture()

	// Simulate losing the durable race: another booking lands between the
	// pre-check and the commit
	f.repo.commitHook = func() error {
		f.repo.commitHook = nil
		f.repo.rows = append(f.repo.rows, Booking{
			ID:        uuid.New(),
			ShowID:    f.showID,
			SeatLabel: "C1",
			Reference: "TKT-RACER000",
		})
		return ErrSeatConstraint
	}

	_, err := f.service.BookSeats(context.Background(), f.userID, f.request("C1", "C2"))
	var conflict *SeatsAlreadyBookedError
	if !errors.As(err, &conflict) {
		t.Fatalf("got %v, want SeatsAlreadyBookedError", err)
	}
	if !reflect.DeepEqual(conflict.Labels, []string{"C1"}) {
		t.Errorf("conflict labels = %v, want [C1]", conflict.Labels)
	}

	if claimed := f.guard.snapshot(f.showID); len(claimed) != 0 {
		t.Errorf("guard claims = %v, want none after compensation", claimed)
	}
}

func TestBookSeatsPersistenceFailureCompensates(t *testing.T) {
	f := newFixture()
	f.repo.commitHook = func() error {
		return fmt.Errorf("connection reset")
	}

	_, err := f.service.BookSeats(context.Background(), f.userID, f.request("D1"))
	var persistence *PersistenceError
	if !errors.As(err, &persistence) {
		t.Fatalf("got %v, want PersistenceError", err)
	}

	if claimed := f.guard.snapshot(f.showID); len(claimed) != 0 {
		t.Errorf("guard claims = %v, want none after compensation", claimed)
	}
	if len(f.notifier.received) != 0 {
		t.Errorf("notifier called for a failed booking")
	}
}

func TestBookSeatsCancelledContextStillCompensates(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())

	f.repo.commitHook = func() error {
		cancel()
		return context.Canceled
	}

	_, err := f.service.BookSeats(ctx, f.userID, f.request("E1", "E2"))
	if err == nil {
		t.Fatal("BookSeats succeeded, want error")
	}

	// The fake guard rejects Release on a cancelled context, so an empty
	// claim set proves the release ran on a detached context
	if claimed := f.guard.snapshot(f.showID); len(claimed) != 0 {
		t.Errorf("guard claims = %v, want none after compensation", claimed)
	}
}

func TestBookSeatsNotifierFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.notifier.err = fmt.Errorf("kafka unavailable")

	result, err := f.service.BookSeats(context.Background(), f.userID, f.request("F1"))
	if err != nil {
		t.Fatalf("BookSeats failed: %v", err)
	}
	if result.Reference == "" {
		t.Error("missing booking reference")
	}

	committed, _ := f.repo.ListBookedSeats(context.Background(), f.showID)
	if !reflect.DeepEqual(committed, []string{"F1"}) {
		t.Errorf("committed seats = %v, want [F1]", committed)
	}
}

func TestBookSeatsConcurrentOverlap(t *testing.T) {
	f := newFixture()

	requests := [][]string{
		{"A1", "A2"},
		{"A2", "A3"},
	}

	type outcome struct {
		result *BookingResult
		err    error
	}
	outcomes := make([]outcome, len(requests))

	var wg sync.WaitGroup
	for i, seats := range requests {
		wg.Add(1)
		go func(i int, seats []string) {
			defer wg.Done()
			result, err := f.service.BookSeats(context.Background(), uuid.New(), f.request(seats...))
			outcomes[i] = outcome{result: result, err: err}
		}(i, seats)
	}
	wg.Wait()

	var winners, losers int
	for _, o := range outcomes {
		if o.err == nil {
			winners++
			continue
		}
		losers++
		var conflict *SeatsAlreadyBookedError
		if !errors.As(o.err, &conflict) {
			t.Errorf("loser error = %v, want SeatsAlreadyBookedError", o.err)
		}
	}
	if winners != 1 || losers != 1 {
		t.Fatalf("winners = %d, losers = %d, want exactly one of each", winners, losers)
	}

	// A2 must be committed exactly once
	committed, _ := f.repo.ListBookedSeats(context.Background(), f.showID)
	count := 0
	for _, seat := range committed {
		if seat == "A2" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("A2 committed %d times, want 1", count)
	}
	if len(committed) != 2 {
		t.Errorf("committed = %v, want the winner's two seats only", committed)
	}
}

func TestBookedSeatsMergesDurableAndClaimed(t *testing.T) {
	f := newFixture()
	f.repo.preload(f.showID, "A1", "A2")
	if err := f.guard.Seed(context.Background(), f.showID, []string{"A2", "A3"}); err != nil {
		t.Fatal(err)
	}

	seatMap, err := f.service.BookedSeats(context.Background(), f.showID)
	if err != nil {
		t.Fatalf("BookedSeats failed: %v", err)
	}

	want := []string{"A1", "A2", "A3"}
	if !reflect.DeepEqual(seatMap.BookedSeats, want) {
		t.Errorf("booked seats = %v, want %v", seatMap.BookedSeats, want)
	}
	if seatMap.TotalSeats != 80 {
		t.Errorf("total seats = %d, want 80", seatMap.TotalSeats)
	}

	// The read must have seeded durable rows into the guard
	if claimed := f.guard.snapshot(f.showID); !reflect.DeepEqual(claimed, want) {
		t.Errorf("guard claims after read = %v, want %v", claimed, want)
	}
}

func TestBookedSeatsUnknownShow(t *testing.T) {
	f := newFixture()
	if _, err := f.service.BookedSeats(context.Background(), uuid.New()); !errors.Is(err, ErrShowNotFound) {
		t.Errorf("got %v, want ErrShowNotFound", err)
	}
}

func TestGetUserBookingsGroupsByReference(t *testing.T) {
	f := newFixture()

	if _, err := f.service.BookSeats(context.Background(), f.userID, f.request("A1", "A2")); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := f.service.BookSeats(context.Background(), f.userID, f.request("B5")); err != nil {
		t.Fatalf("second booking failed: %v", err)
	}

	history, err := f.service.GetUserBookings(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("GetUserBookings failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}

	seatsByLen := make(map[int][]string)
	for _, b := range history {
		if !referencePattern.MatchString(b.Reference) {
			t.Errorf("reference %q does not match %s", b.Reference, referencePattern)
		}
		seatsByLen[len(b.Seats)] = b.Seats
	}
	if !reflect.DeepEqual(seatsByLen[2], []string{"A1", "A2"}) {
		t.Errorf("two-seat booking = %v, want [A1 A2]", seatsByLen[2])
	}
	if !reflect.DeepEqual(seatsByLen[1], []string{"B5"}) {
		t.Errorf("one-seat booking = %v, want [B5]", seatsByLen[1])
	}
}
