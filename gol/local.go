package gol

import "fmt"

// localTransport connects ranks of one process through in-memory mailboxes.
// Ranks share nothing but the mailboxes, and only through Send.
type localTransport struct {
	rank      int
	mailboxes []*mailbox
}

// NewLocalRing makes size connected ranks for running workers as goroutines.
func NewLocalRing(size int) []*Comm {
	mailboxes := make([]*mailbox, size)
	for i := range mailboxes {
		mailboxes[i] = newMailbox()
	}
	comms := make([]*Comm, size)
	for rank := range comms {
		comms[rank] = NewComm(rank, size, &localTransport{rank: rank, mailboxes: mailboxes})
	}
	return comms
}

func (t *localTransport) Send(dest, tag int, payload []byte) error {
	if dest < 0 || dest >= len(t.mailboxes) {
		return fmt.Errorf("no rank %d", dest)
	}
	return t.mailboxes[dest].deliver(t.rank, tag, payload)
}

func (t *localTransport) Recv(source, tag int) ([]byte, error) {
	return t.mailboxes[t.rank].take(source, tag)
}

// Close shuts every mailbox of the ring, waking any rank blocked in Recv.
func (t *localTransport) Close() error {
	for _, m := range t.mailboxes {
		m.close()
	}
	return nil
}
