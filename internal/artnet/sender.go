package artnet

import (
	"fmt"
	"net"
	"syscall"
	"time"
)

// Sender broadcasts DMX frames to every node on the subnet, keeping the
// per-packet sequence number Art-Net wants.
type Sender struct {
	conn      *net.UDPConn
	broadcast *net.UDPAddr
	seq       uint8
}

// NewSender opens a UDP socket with broadcast enabled. An empty or invalid
// broadcast address falls back to 255.255.255.255.
func NewSender(broadcast string) (*Sender, error) {
	conn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return nil, fmt.Errorf("open artnet socket: %w", err)
	}
	if err := enableBroadcast(conn); err != nil {
		conn.Close()
		return nil, err
	}

	ip := net.IPv4bcast
	if broadcast != "" {
		if parsed := net.ParseIP(broadcast); parsed != nil {
			ip = parsed
		}
	}
	return &Sender{
		conn:      conn,
		broadcast: &net.UDPAddr{IP: ip, Port: Port},
		seq:       1,
	}, nil
}

func enableBroadcast(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return fmt.Errorf("raw socket access: %w", err)
	}
	var sockErr error
	err = raw.Control(func(fd uintptr) {
		sockErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_BROADCAST, 1)
	})
	if err != nil {
		return err
	}
	if sockErr != nil {
		return fmt.Errorf("enable broadcast: %w", sockErr)
	}
	return nil
}

// SendDMX broadcasts one DMX frame for a universe.
func (s *Sender) SendDMX(payload []byte, universe uint16) error {
	packet, err := dmxPacket(s.seq, universe, payload)
	if err != nil {
		return err
	}
	s.seq++
	if s.seq == 0 {
		s.seq = 1 // sequence 0 means "disabled" on the wire
	}
	_, err = s.conn.WriteToUDP(packet, s.broadcast)
	return err
}

// SendSync broadcasts an ArtSync so nodes latch the last frame together.
func (s *Sender) SendSync() error {
	_, err := s.conn.WriteToUDP(syncPacket(), s.broadcast)
	return err
}

// Close releases the socket.
func (s *Sender) Close() error {
	return s.conn.Close()
}

// Node is one Art-Net device discovered by Poll.
type Node struct {
	Name string
	Addr net.IP
}

// Poll broadcasts an ArtPoll and collects replies until the timeout elapses.
func Poll(broadcast string, timeout time.Duration) ([]Node, error) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4zero, Port: Port})
	if err != nil {
		return nil, fmt.Errorf("open artnet socket: %w", err)
	}
	defer conn.Close()
	if err := enableBroadcast(conn); err != nil {
		return nil, err
	}

	ip := net.IPv4bcast
	if broadcast != "" {
		if parsed := net.ParseIP(broadcast); parsed != nil {
			ip = parsed
		}
	}
	if _, err := conn.WriteToUDP(pollPacket(), &net.UDPAddr{IP: ip, Port: Port}); err != nil {
		return nil, fmt.Errorf("send poll: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(timeout))
	var nodes []Node
	buf := make([]byte, 512)
	for {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			break
		}
		if name, ok := parsePollReply(buf[:n]); ok {
			nodes = append(nodes, Node{Name: name, Addr: addr.IP})
		}
	}
	return nodes, nil
}
