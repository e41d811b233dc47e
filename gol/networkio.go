package gol

import (
	"fmt"
	"log"
	"net"
	"net/rpc"
	"sync"
	"time"
)

// Message is the unit carried between worker processes
type Message struct {
	Source  int
	Tag     int
	Payload []byte
}

// RPC service queuing messages into the local mailbox
type mailboxService struct {
	box *mailbox
}

func (s *mailboxService) Deliver(msg Message, reply *struct{}) error {
	return s.box.deliver(msg.Source, msg.Tag, msg.Payload)
}

// NetTransport connects worker processes over TCP.
// Every rank serves a Mailbox over net/rpc on its own address and calls
// Mailbox.Deliver on its peers to send.
type NetTransport struct {
	rank      int
	peers     []string // Address of every rank, indexed by rank
	listener  net.Listener
	box       *mailbox
	mutex     *sync.Mutex // synchronise access to clients and closed
	clients   []*rpc.Client
	closed    bool
	DialRetry time.Duration // Pause between attempts to reach a peer that is not up yet
}

// Listen serves rank's mailbox on peers[rank].
func Listen(rank int, peers []string) (*NetTransport, error) {
	if rank < 0 || rank >= len(peers) {
		return nil, configErrorf("rank %d outside 0..%d", rank, len(peers)-1)
	}
	listener, err := net.Listen("tcp", peers[rank])
	if err != nil {
		return nil, err
	}
	return NewNetTransport(rank, listener, peers)
}

// NewNetTransport serves rank's mailbox on an existing listener.
func NewNetTransport(rank int, listener net.Listener, peers []string) (*NetTransport, error) {
	t := &NetTransport{
		rank:      rank,
		peers:     peers,
		listener:  listener,
		box:       newMailbox(),
		mutex:     new(sync.Mutex),
		clients:   make([]*rpc.Client, len(peers)),
		DialRetry: time.Second,
	}
	server := rpc.NewServer()
	if err := server.RegisterName("Mailbox", &mailboxService{box: t.box}); err != nil {
		return nil, err
	}
	go server.Accept(listener)
	log.Printf("Rank %d serving on %s", rank, listener.Addr().String())
	return t, nil
}

// Get a client for dest, dialling until the peer comes up
func (t *NetTransport) client(dest int) (*rpc.Client, error) {
	logged := false
	for {
		t.mutex.Lock()
		if t.closed {
			t.mutex.Unlock()
			return nil, errTransportClosed
		}
		if t.clients[dest] != nil {
			client := t.clients[dest]
			t.mutex.Unlock()
			return client, nil
		}
		t.mutex.Unlock()

		client, err := rpc.Dial("tcp", t.peers[dest])
		if err == nil {
			t.mutex.Lock()
			if t.clients[dest] == nil && !t.closed {
				t.clients[dest] = client
				log.Printf("Connection to %s established", t.peers[dest])
			} else {
				client.Close()
			}
			t.mutex.Unlock()
			continue
		}
		if !logged {
			log.Printf("Waiting for rank %d at %s: %v", dest, t.peers[dest], err)
			logged = true
		}
		time.Sleep(t.DialRetry)
	}
}

func (t *NetTransport) Send(dest, tag int, payload []byte) error {
	if dest < 0 || dest >= len(t.peers) {
		return fmt.Errorf("no rank %d", dest)
	}
	if dest == t.rank {
		return t.box.deliver(t.rank, tag, payload)
	}
	client, err := t.client(dest)
	if err != nil {
		return err
	}
	msg := Message{Source: t.rank, Tag: tag, Payload: payload}
	return client.Call("Mailbox.Deliver", msg, &struct{}{})
}

func (t *NetTransport) Recv(source, tag int) ([]byte, error) {
	return t.box.take(source, tag)
}

// Close stops serving and drops every peer connection.
func (t *NetTransport) Close() error {
	t.mutex.Lock()
	if t.closed {
		t.mutex.Unlock()
		return nil
	}
	t.closed = true
	clients := t.clients
	t.mutex.Unlock()

	t.box.close()
	err := t.listener.Close()
	for _, client := range clients {
		if client != nil {
			client.Close()
		}
	}
	return err
}
