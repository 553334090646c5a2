package presence

import (
	"bufio"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/communion/parameter"
)

// ClientConfig holds presence connection settings
type ClientConfig struct {
	Address string

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	ReconnectDelay time.Duration

	// PollInterval triggers an explicit POLL when no push has arrived;
	// hybrid delivery covers servers that only answer on request
	PollInterval time.Duration
}

// DefaultClientConfig returns production-safe defaults
func DefaultClientConfig(addr string) *ClientConfig {
	return &ClientConfig{
		Address:        addr,
		ConnectTimeout: parameter.PresenceConnectTimeout,
		ReadTimeout:    parameter.PresenceReadTimeout,
		WriteTimeout:   parameter.PresenceWriteTimeout,
		ReconnectDelay: parameter.PresenceReconnectDelay,
		PollInterval:   parameter.PresencePollInterval,
	}
}

// Client consumes rosters from a TCP presence server
// Reader goroutine stores snapshots; the frame loop reads Roster() between
// ticks. Connection loss degrades to the last known roster until reconnect
type Client struct {
	config *ClientConfig

	mu     sync.RWMutex
	roster Roster

	connected atomic.Bool
	running   atomic.Bool
	stopCh    chan struct{}
	wg        sync.WaitGroup

	// OnConnectionChange, if set before Start, is called from the client
	// goroutine on connect/disconnect edges
	OnConnectionChange func(connected bool)

	// OnRoster, if set before Start, is called from the client goroutine
	// with each stored roster snapshot
	OnRoster func(roster Roster)
}

// NewClient creates a client; call Start to begin
func NewClient(cfg *ClientConfig) *Client {
	return &Client{
		config: cfg,
		roster: Roster{},
		stopCh: make(chan struct{}),
	}
}

// Start launches the connect/read loop
func (c *Client) Start() error {
	if !c.running.CompareAndSwap(false, true) {
		return nil // Already running
	}
	c.wg.Add(1)
	go c.run()
	return nil
}

// Stop terminates the client and waits for the loop to exit
func (c *Client) Stop() {
	if !c.running.CompareAndSwap(true, false) {
		return
	}
	close(c.stopCh)
	c.wg.Wait()
}

// Roster returns the latest snapshot; immutable, never nil
func (c *Client) Roster() Roster {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roster
}

// Connected reports current connection state
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// run is the reconnect loop
func (c *Client) run() {
	defer c.wg.Done()

	for {
		select {
		case <-c.stopCh:
			return
		default:
		}

		conn, err := net.DialTimeout("tcp", c.config.Address, c.config.ConnectTimeout)
		if err != nil {
			if !c.sleep(c.config.ReconnectDelay) {
				return
			}
			continue
		}

		c.setConnected(true)
		c.serve(conn)
		c.setConnected(false)

		if !c.sleep(c.config.ReconnectDelay) {
			return
		}
	}
}

// serve reads roster lines until the connection drops or the client stops
func (c *Client) serve(conn net.Conn) {
	defer conn.Close()

	// Close the connection when Stop fires so the blocked read returns
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-c.stopCh:
			conn.Close()
		case <-done:
		}
	}()

	reader := bufio.NewReaderSize(conn, parameter.PresenceLineMax)
	lastData := time.Now()

	for {
		select {
		case <-c.stopCh:
			return
		default:
		}

		// Poll when push has been quiet for a full interval
		if time.Since(lastData) >= c.config.PollInterval {
			conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			if _, err := conn.Write([]byte(pollVerb + "\n")); err != nil {
				return
			}
			lastData = time.Now()
		}

		conn.SetReadDeadline(time.Now().Add(c.config.PollInterval))
		line, err := reader.ReadString('\n')
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue // Quiet wire, poll next iteration
			}
			return
		}
		lastData = time.Now()

		if roster, ok := ParseRosterLine(line); ok {
			c.mu.Lock()
			c.roster = roster
			c.mu.Unlock()
			if c.OnRoster != nil {
				c.OnRoster(roster)
			}
		}
	}
}

func (c *Client) setConnected(connected bool) {
	c.connected.Store(connected)
	if c.OnConnectionChange != nil {
		c.OnConnectionChange(connected)
	}
}

// sleep waits d or until Stop; returns false when stopping
func (c *Client) sleep(d time.Duration) bool {
	select {
	case <-c.stopCh:
		return false
	case <-time.After(d):
		return true
	}
}
