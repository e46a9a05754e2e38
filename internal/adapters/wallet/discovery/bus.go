// Package discovery is an in-process announcement bus for locally installed
// wallets. A discovery round attaches a listener, broadcasts one request and
// detaches once its window closes; announcements after that are dropped.
package discovery

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
)

const DefaultWindow = 200 * time.Millisecond

// Announcement is what a wallet publishes in answer to a request. Exactly one
// of Ethereum or Solana is set, matching Interface.
type Announcement struct {
	Info      domain.ProviderInfo
	Interface domain.InterfaceType
	Ethereum  ports.EthereumProvider
	Solana    ports.SolanaProvider
}

type Bus struct {
	mu         sync.Mutex
	nextID     int
	listeners  map[int]func(Announcement)
	responders map[int]func(*Bus)
}

func NewBus() *Bus {
	return &Bus{
		listeners:  map[int]func(Announcement){},
		responders: map[int]func(*Bus){},
	}
}

// OnRequest registers a wallet that announces itself whenever a request is
// broadcast. The returned func unregisters it.
func (b *Bus) OnRequest(respond func(*Bus)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.responders[id] = respond

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.responders, id)
	}
}

// Announce delivers a to the listeners attached right now.
func (b *Bus) Announce(a Announcement) {
	b.mu.Lock()
	listeners := make([]func(Announcement), 0, len(b.listeners))
	for _, listener := range b.listeners {
		listeners = append(listeners, listener)
	}
	b.mu.Unlock()

	for _, listener := range listeners {
		listener(a)
	}
}

// Discover collects announcements for iface during window, or until ctx is
// done. Duplicate UUIDs keep the first announcement.
func (b *Bus) Discover(ctx context.Context, iface domain.InterfaceType, window time.Duration) []Announcement {
	if window <= 0 {
		window = DefaultWindow
	}

	var (
		mu      sync.Mutex
		seen    = map[string]struct{}{}
		results []Announcement
	)
	detach := b.listen(func(a Announcement) {
		if a.Interface != iface {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if _, ok := seen[a.Info.UUID]; ok {
			return
		}
		seen[a.Info.UUID] = struct{}{}
		results = append(results, a)
	})

	b.request()

	timer := time.NewTimer(window)
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
	timer.Stop()
	detach()

	mu.Lock()
	defer mu.Unlock()
	return append([]Announcement(nil), results...)
}

func (b *Bus) listen(listener func(Announcement)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.listeners[id] = listener

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

func (b *Bus) request() {
	b.mu.Lock()
	responders := make([]func(*Bus), 0, len(b.responders))
	for _, respond := range b.responders {
		responders = append(responders, respond)
	}
	b.mu.Unlock()

	for _, respond := range responders {
		respond(b)
	}
}
