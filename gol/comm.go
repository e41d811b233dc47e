package gol

import (
	"errors"
	"sync"
)

// Message tags. Mailboxes are FIFO per (source, tag), so a tag can be
// reused every turn without later messages overtaking earlier ones.
const (
	tagUpward = iota
	tagDownward
	tagBroadcast
	tagBarrierArrive
	tagBarrierRelease
	tagGather
)

// coordinator is the rank that broadcasts the setup and collects the result.
const coordinator = 0

var errTransportClosed = errors.New("transport closed")

// Transport moves byte payloads between ranks.
// Send returns once the payload is queued at the destination, without waiting
// for the matching Recv. Recv blocks until a payload from source with tag arrives.
type Transport interface {
	Send(dest, tag int, payload []byte) error
	Recv(source, tag int) ([]byte, error)
	Close() error
}

// Comm is the rank context every worker operation runs in.
type Comm struct {
	rank      int
	size      int
	transport Transport
}

func NewComm(rank, size int, transport Transport) *Comm {
	return &Comm{rank: rank, size: size, transport: transport}
}

func (c *Comm) Rank() int { return c.rank }

func (c *Comm) Size() int { return c.size }

func (c *Comm) Close() error { return c.transport.Close() }

func (c *Comm) send(op string, dest, tag int, payload []byte) error {
	if err := c.transport.Send(dest, tag, payload); err != nil {
		return &CommunicationFailure{Op: op, Rank: c.rank, Peer: dest, Err: err}
	}
	return nil
}

func (c *Comm) recv(op string, source, tag int) ([]byte, error) {
	payload, err := c.transport.Recv(source, tag)
	if err != nil {
		return nil, &CommunicationFailure{Op: op, Rank: c.rank, Peer: source, Err: err}
	}
	return payload, nil
}

// Broadcast delivers payload from source to every rank.
// Every rank, source included, returns the source's payload.
func (c *Comm) Broadcast(payload []byte, source int) ([]byte, error) {
	if c.rank != source {
		return c.recv("broadcast", source, tagBroadcast)
	}
	for rank := 0; rank != c.size; rank++ {
		if rank == source {
			continue
		}
		if err := c.send("broadcast", rank, tagBroadcast, payload); err != nil {
			return nil, err
		}
	}
	return payload, nil
}

// SendReceive sends out to dest and waits for a payload from source.
// The send never waits for dest to receive, so a ring of paired calls cannot deadlock.
func (c *Comm) SendReceive(out []byte, dest, destTag, source, sourceTag int) ([]byte, error) {
	if err := c.send("send", dest, destTag, out); err != nil {
		return nil, err
	}
	return c.recv("recv", source, sourceTag)
}

// Barrier returns once every rank has called it.
func (c *Comm) Barrier() error {
	if c.rank != coordinator {
		if err := c.send("barrier", coordinator, tagBarrierArrive, nil); err != nil {
			return err
		}
		_, err := c.recv("barrier", coordinator, tagBarrierRelease)
		return err
	}
	for rank := 1; rank != c.size; rank++ {
		if _, err := c.recv("barrier", rank, tagBarrierArrive); err != nil {
			return err
		}
	}
	for rank := 1; rank != c.size; rank++ {
		if err := c.send("barrier", rank, tagBarrierRelease, nil); err != nil {
			return err
		}
	}
	return nil
}

// Gather collects one payload per rank at dest, indexed by rank.
// Ranks other than dest get a nil slice back.
func (c *Comm) Gather(local []byte, dest int) ([][]byte, error) {
	if c.rank != dest {
		return nil, c.send("gather", dest, tagGather, local)
	}
	payloads := make([][]byte, c.size)
	payloads[dest] = local
	for rank := 0; rank != c.size; rank++ {
		if rank == dest {
			continue
		}
		payload, err := c.recv("gather", rank, tagGather)
		if err != nil {
			return nil, err
		}
		payloads[rank] = payload
	}
	return payloads, nil
}

type mailboxKey struct {
	source int
	tag    int
}

// mailbox queues incoming payloads for one rank
type mailbox struct {
	cond   *sync.Cond
	queues map[mailboxKey][][]byte
	closed bool
}

func newMailbox() *mailbox {
	return &mailbox{
		cond:   sync.NewCond(new(sync.Mutex)),
		queues: make(map[mailboxKey][][]byte),
	}
}

func (m *mailbox) deliver(source, tag int, payload []byte) error {
	m.cond.L.Lock()
	defer m.cond.L.Unlock()
	if m.closed {
		return errTransportClosed
	}
	key := mailboxKey{source, tag}
	m.queues[key] = append(m.queues[key], payload)
	m.cond.Broadcast()
	return nil
}

func (m *mailbox) take(source, tag int) ([]byte, error) {
	m.cond.L.Lock()
	defer m.cond.L.Unlock()
	key := mailboxKey{source, tag}
	for len(m.queues[key]) == 0 {
		if m.closed {
			return nil, errTransportClosed
		}
		m.cond.Wait()
	}
	queue := m.queues[key]
	payload := queue[0]
	queue[0] = nil
	if len(queue) == 1 {
		delete(m.queues, key)
	} else {
		m.queues[key] = queue[1:]
	}
	return payload, nil
}

func (m *mailbox) close() {
	m.cond.L.Lock()
	m.closed = true
	m.cond.Broadcast()
	m.cond.L.Unlock()
}
