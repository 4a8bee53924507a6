package bus

import "errors"

// Subscriptions tracks every subscription made on behalf of one owner so
// they can be released together. The zero value is not usable; use
// NewSubscriptions.
type Subscriptions struct {
	bus  EventBus
	subs []Subscription
}

// NewSubscriptions returns an empty set bound to b.
func NewSubscriptions(b EventBus) *Subscriptions {
	return &Subscriptions{bus: b}
}

// Subscribe registers handler for eventType and records the subscription.
func (s *Subscriptions) Subscribe(eventType string, handler EventHandler) error {
	sub, err := s.bus.Subscribe(eventType, handler)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Add records a subscription created elsewhere.
func (s *Subscriptions) Add(sub Subscription) {
	if sub != nil {
		s.subs = append(s.subs, sub)
	}
}

// Len returns the number of recorded subscriptions that are still active.
func (s *Subscriptions) Len() int {
	n := 0
	for _, sub := range s.subs {
		if sub.IsActive() {
			n++
		}
	}
	return n
}

// CancelAll cancels every recorded subscription and forgets them.
func (s *Subscriptions) CancelAll() error {
	var all error
	for _, sub := range s.subs {
		if err := sub.Cancel(); err != nil {
			all = errors.Join(all, err)
		}
	}
	s.subs = nil
	return all
}
