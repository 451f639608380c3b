// Package artnet renders governed fixture state into DMX frames and ships
// them over UDP Art-Net. It is the outward-facing half of the show; the
// director core knows nothing about it.
package artnet

import "errors"

// Port is the well-known Art-Net UDP port.
const Port = 6454

const protocolVersion = 14

var packetID = []byte("Art-Net\x00")

// dmxPacket constructs an ArtDMX packet for the given universe and payload.
func dmxPacket(seq uint8, universe uint16, payload []byte) ([]byte, error) {
	if len(payload) > 512 {
		return nil, errors.New("dmx payload must be <= 512 bytes")
	}
	packet := make([]byte, 18+len(payload))
	copy(packet[0:], packetID)
	packet[8], packet[9] = 0x00, 0x50 // OpCode ArtDMX
	packet[10], packet[11] = 0x00, protocolVersion
	packet[12], packet[13] = seq, 0x00 // sequence, physical port (unused)
	packet[14] = byte(universe & 0xFF)
	packet[15] = byte((universe >> 8) & 0x7F)
	packet[16] = byte((len(payload) >> 8) & 0xFF)
	packet[17] = byte(len(payload) & 0xFF)
	copy(packet[18:], payload)
	return packet, nil
}

// syncPacket constructs an ArtSync packet so nodes latch buffered DMX data
// simultaneously.
func syncPacket() []byte {
	packet := make([]byte, 14)
	copy(packet[0:], packetID)
	packet[8], packet[9] = 0x00, 0x52 // OpCode ArtSync
	packet[10], packet[11] = 0x00, protocolVersion
	return packet
}

// pollPacket constructs an ArtPoll discovery packet.
func pollPacket() []byte {
	packet := make([]byte, 14)
	copy(packet[0:], packetID)
	packet[8], packet[9] = 0x00, 0x20 // OpCode ArtPoll
	packet[10], packet[11] = 0x00, protocolVersion
	packet[12] = 0x06 // TalkToMe flags
	return packet
}

// parsePollReply extracts the short node name from an ArtPollReply packet.
func parsePollReply(buf []byte) (string, bool) {
	if len(buf) < 44 || string(buf[0:7]) != "Art-Net" || buf[8] != 0x00 || buf[9] != 0x21 {
		return "", false
	}
	name := buf[26:44]
	for i, b := range name {
		if b == 0 {
			name = name[:i]
			break
		}
	}
	return string(name), true
}
