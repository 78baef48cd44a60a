package failover

import (
	"context"
	"fmt"
	"sync"
)

// -------- test fakes --------

// fakeDirectory serves identities split into pages of pageSize. Cursors are
// the index of the next page as a string. failOnPage makes that 1-based
// page request fail.
type fakeDirectory struct {
	identities []IdentityRecord
	pageSize   int
	failOnPage int
	failErr    error

	mu      sync.Mutex
	calls   int
	cursors []string
}

func (f *fakeDirectory) ListIdentities(ctx context.Context, poolRef, cursor string) (*Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.cursors = append(f.cursors, cursor)
	if f.failOnPage == f.calls {
		if f.failErr != nil {
			return nil, f.failErr
		}
		return nil, fmt.Errorf("throttled")
	}

	start := 0
	if cursor != "" {
		if _, err := fmt.Sscanf(cursor, "page-%d", &start); err != nil {
			return nil, err
		}
	}
	size := f.pageSize
	if size <= 0 {
		size = len(f.identities)
	}
	end := start + size
	if end > len(f.identities) {
		end = len(f.identities)
	}

	p := &Page{Identities: append([]IdentityRecord(nil), f.identities[start:end]...)}
	if end < len(f.identities) {
		p.NextCursor = fmt.Sprintf("page-%d", end)
	}
	return p, nil
}

// scriptedDirectory returns the given pages in order.
type scriptedDirectory struct {
	pages []*Page
	errs  []error
	calls int
}

func (s *scriptedDirectory) ListIdentities(ctx context.Context, poolRef, cursor string) (*Page, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	return s.pages[i], nil
}

type publishCall struct {
	Topic      string
	Subject    string
	Body       string
	Attributes map[string]string
}

type subscribeCall struct {
	Topic   string
	Address string
	Policy  map[string][]string
}

type fakeNotifier struct {
	mu         sync.Mutex
	publishes  []publishCall
	subscribes []subscribeCall

	publishErr   map[string]error
	subscribeErr map[string]error
}

func (f *fakeNotifier) Publish(ctx context.Context, topicRef, subject, body string, attributes map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	addr := attributes[FilterAttribute]
	if err := f.publishErr[addr]; err != nil {
		return err
	}
	f.publishes = append(f.publishes, publishCall{Topic: topicRef, Subject: subject, Body: body, Attributes: attributes})
	return nil
}

func (f *fakeNotifier) Subscribe(ctx context.Context, topicRef, address string, filterPolicy map[string][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.subscribeErr[address]; err != nil {
		return err
	}
	f.subscribes = append(f.subscribes, subscribeCall{Topic: topicRef, Address: address, Policy: filterPolicy})
	return nil
}

type fakeDispatcher struct {
	mu        sync.Mutex
	addresses []string
	errs      map[string]error
}

func (f *fakeDispatcher) Notify(ctx context.Context, address string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addresses = append(f.addresses, address)
	return f.errs[address]
}

type fakeParameterStore struct {
	written []ParameterEntry
	errOn   map[string]error
}

func (f *fakeParameterStore) PutParameter(ctx context.Context, e ParameterEntry) error {
	if err := f.errOn[e.Name]; err != nil {
		return err
	}
	f.written = append(f.written, e)
	return nil
}

func user(name, email string) IdentityRecord {
	attrs := map[string]string{"sub": name + "-sub"}
	if email != "" {
		attrs[EmailAttribute] = email
	}
	return IdentityRecord{Username: name, Attributes: attrs}
}

func usersN(n int) []IdentityRecord {
	out := make([]IdentityRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, user(fmt.Sprintf("u%02d", i), fmt.Sprintf("u%02d@example.com", i)))
	}
	return out
}

// panickingDispatcher panics for the listed addresses and succeeds otherwise.
type panickingDispatcher struct {
	mu        sync.Mutex
	addresses []string
	panicOn   map[string]bool
}

func (p *panickingDispatcher) Notify(ctx context.Context, address string) error {
	p.mu.Lock()
	p.addresses = append(p.addresses, address)
	p.mu.Unlock()
	if p.panicOn[address] {
		panic("dispatch panic for " + address)
	}
	return nil
}
