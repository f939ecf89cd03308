// If you are AI: This file implements the AMF0 packet envelope: version,
// headers and messages, each carrying one encoded value.

package amf0

import (
	"encoding/binary"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// UnknownLength is the declared length senders use when they did not
// measure the body. It never counts as a mismatch.
const UnknownLength uint32 = 0xFFFFFFFF

// Header is a packet header entry.
type Header struct {
	Name           string
	MustUnderstand bool
	Length         uint32 // as declared on the wire
	LengthMismatch bool   // declared length differs from bytes consumed
	Value          Value
}

// Message is a packet message body.
type Message struct {
	TargetURI      string
	ResponseURI    string
	BodyLength     uint32 // as declared on the wire
	LengthMismatch bool   // declared length differs from bytes consumed
	Value          Value
}

// Packet is a decoded AMF0 envelope. References holds the reference table
// built while decoding, for resolving Reference values.
type Packet struct {
	Version    uint16
	Headers    []Header
	Messages   []Message
	References *RefTable
}

// Decode decodes a complete AMF0 packet from data.
func Decode(data []byte, opts ...Option) (*Packet, error) {
	return NewDecoder(data, opts...).DecodePacket()
}

// DecodePacket decodes a packet starting at the current offset. Exactly the
// declared number of headers and messages are decoded; the first error
// aborts the whole packet.
func (d *Decoder) DecodePacket() (*Packet, error) {
	version, err := d.cur.ReadU16()
	if err != nil {
		return nil, err
	}
	headerCount, err := d.cur.ReadU16()
	if err != nil {
		return nil, err
	}
	p := &Packet{
		Version:    version,
		Headers:    make([]Header, 0, headerCount),
		References: d.refs,
	}
	for i := 0; i < int(headerCount); i++ {
		h, err := d.decodeHeader()
		if err != nil {
			return nil, err
		}
		p.Headers = append(p.Headers, h)
	}

	messageCount, err := d.cur.ReadU16()
	if err != nil {
		return nil, err
	}
	p.Messages = make([]Message, 0, messageCount)
	for i := 0; i < int(messageCount); i++ {
		m, err := d.decodeMessage()
		if err != nil {
			return nil, err
		}
		p.Messages = append(p.Messages, m)
	}

	if d.cur.Remaining() > 0 && d.opts.lengthPolicy == LengthStrict {
		return nil, newError(KindTrailingBytes, d.cur.Position(), "%d bytes", d.cur.Remaining())
	}
	d.opts.logger.Debug("decoded packet",
		zap.Uint16("version", p.Version),
		zap.Int("headers", len(p.Headers)),
		zap.Int("messages", len(p.Messages)),
		zap.Int("references", d.refs.Len()),
		zap.Int("bytes", d.cur.Position()))
	return p, nil
}

// decodeHeader decodes one header entry.
func (d *Decoder) decodeHeader() (Header, error) {
	var h Header
	var err error
	if h.Name, err = d.cur.ReadShortText(); err != nil {
		return h, err
	}
	if h.MustUnderstand, err = d.cur.ReadBool(); err != nil {
		return h, err
	}
	if h.Length, err = d.cur.ReadU32(); err != nil {
		return h, err
	}
	start := d.cur.Position()
	if h.Value, err = d.DecodeValue(); err != nil {
		return h, err
	}
	h.LengthMismatch, err = d.checkLength("header", h.Name, h.Length, start)
	return h, err
}

// decodeMessage decodes one message entry.
func (d *Decoder) decodeMessage() (Message, error) {
	var m Message
	var err error
	if m.TargetURI, err = d.cur.ReadShortText(); err != nil {
		return m, err
	}
	if m.ResponseURI, err = d.cur.ReadShortText(); err != nil {
		return m, err
	}
	if m.BodyLength, err = d.cur.ReadU32(); err != nil {
		return m, err
	}
	start := d.cur.Position()
	if m.Value, err = d.DecodeValue(); err != nil {
		return m, err
	}
	m.LengthMismatch, err = d.checkLength("message", m.TargetURI, m.BodyLength, start)
	return m, err
}

// checkLength compares a declared body length with the bytes consumed since
// start, applying the configured policy.
func (d *Decoder) checkLength(kind, name string, declared uint32, start int) (bool, error) {
	consumed := d.cur.Position() - start
	if declared == UnknownLength || uint64(declared) == uint64(consumed) {
		return false, nil
	}
	if d.opts.lengthPolicy == LengthStrict {
		return true, newError(KindHeaderLengthMismatch, start,
			"%s %q declares %d bytes, consumed %d", kind, name, declared, consumed)
	}
	d.opts.logger.Warn("declared length mismatch",
		zap.String("entry", kind),
		zap.String("name", name),
		zap.Uint32("declared", declared),
		zap.Int("consumed", consumed),
		zap.Int("offset", start))
	return true, nil
}

// Encode encodes a packet. Header and message lengths are measured from the
// encoded bodies; one reference table spans the whole packet.
func Encode(p *Packet, opts ...Option) ([]byte, error) {
	if len(p.Headers) > math.MaxUint16 || len(p.Messages) > math.MaxUint16 {
		return nil, fmt.Errorf("amf0: packet has %d headers and %d messages, limit is %d",
			len(p.Headers), len(p.Messages), math.MaxUint16)
	}
	e := NewEncoder(opts...)
	if err := binary.Write(&e.buf, binary.BigEndian, p.Version); err != nil {
		return nil, err
	}
	if err := binary.Write(&e.buf, binary.BigEndian, uint16(len(p.Headers))); err != nil {
		return nil, err
	}
	for _, h := range p.Headers {
		if err := e.writeShortText(h.Name); err != nil {
			return nil, err
		}
		must := byte(0)
		if h.MustUnderstand {
			must = 1
		}
		if err := e.buf.WriteByte(must); err != nil {
			return nil, err
		}
		if err := e.encodeBody(h.Value); err != nil {
			return nil, err
		}
	}
	if err := binary.Write(&e.buf, binary.BigEndian, uint16(len(p.Messages))); err != nil {
		return nil, err
	}
	for _, m := range p.Messages {
		if err := e.writeShortText(m.TargetURI); err != nil {
			return nil, err
		}
		if err := e.writeShortText(m.ResponseURI); err != nil {
			return nil, err
		}
		if err := e.encodeBody(m.Value); err != nil {
			return nil, err
		}
	}
	return e.Bytes(), nil
}

// encodeBody writes a u32 length placeholder, the value, then patches the
// placeholder with the measured length.
func (e *Encoder) encodeBody(v Value) error {
	lenAt := e.buf.Len()
	if err := binary.Write(&e.buf, binary.BigEndian, uint32(0)); err != nil {
		return err
	}
	if err := e.Encode(v); err != nil {
		return err
	}
	n := e.buf.Len() - lenAt - 4
	binary.BigEndian.PutUint32(e.buf.Bytes()[lenAt:], uint32(n))
	return nil
}
