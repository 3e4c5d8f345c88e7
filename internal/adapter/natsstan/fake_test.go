package natsstan

import (
	"errors"
	"sync"

	stan "github.com/nats-io/stan.go"
)

// fakeDialer simulates the broker: the first failFirst dials are refused,
// later ones hand out fakeConns that record publishes and subscriptions.
type fakeDialer struct {
	mu           sync.Mutex
	failFirst    int
	publishErr   error
	subscribeErr error

	dials     int
	closed    int
	published [][]byte
	lastOpts  []stan.Option
	cb        stan.MsgHandler
}

func (d *fakeDialer) dial(opts ...stan.Option) (stan.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dials++
	d.lastOpts = opts
	if d.dials <= d.failFirst {
		return nil, errors.New("connection refused")
	}
	return &fakeConn{dialer: d}, nil
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

func (d *fakeDialer) handler() stan.MsgHandler {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cb
}

// lostHandler digs the connection-lost callback out of the dial options.
func (d *fakeDialer) lostHandler() stan.ConnectionLostHandler {
	d.mu.Lock()
	defer d.mu.Unlock()
	var o stan.Options
	for _, opt := range d.lastOpts {
		_ = opt(&o)
	}
	return o.ConnectionLostCB
}

// fakeConn embeds the interface so unstubbed methods simply panic if hit.
type fakeConn struct {
	stan.Conn
	dialer *fakeDialer
}

func (c *fakeConn) Publish(_ string, data []byte) error {
	c.dialer.mu.Lock()
	defer c.dialer.mu.Unlock()
	if c.dialer.publishErr != nil {
		return c.dialer.publishErr
	}
	c.dialer.published = append(c.dialer.published, data)
	return nil
}

func (c *fakeConn) QueueSubscribe(_, _ string, cb stan.MsgHandler, _ ...stan.SubscriptionOption) (stan.Subscription, error) {
	c.dialer.mu.Lock()
	defer c.dialer.mu.Unlock()
	if c.dialer.subscribeErr != nil {
		return nil, c.dialer.subscribeErr
	}
	c.dialer.cb = cb
	return &fakeSub{}, nil
}

func (c *fakeConn) Close() error {
	c.dialer.mu.Lock()
	c.dialer.closed++
	c.dialer.mu.Unlock()
	return nil
}

type fakeSub struct{ stan.Subscription }

func (*fakeSub) Unsubscribe() error { return nil }
func (*fakeSub) Close() error       { return nil }
