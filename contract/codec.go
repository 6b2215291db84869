package contract

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"okinoko_presale/sdk"
)

// codecVersion leads every blob so a later layout change can still read old records.
const codecVersion byte = 1

type binWriter struct {
	buf bytes.Buffer
}

// newWriter spins up a fresh writer so we dont leak old bytes between encodes.
func newWriter() *binWriter {
	w := &binWriter{}
	w.buf.WriteByte(codecVersion)
	return w
}

func (w *binWriter) string() string { return w.buf.String() }

// writeBool squashes bools into a single byte flag for deterministic payloads.
func (w *binWriter) writeBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

// writeUint64 writes big endian numbers so tooling can read them without guessing.
func (w *binWriter) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// writeVarUint uses varints to keep counts and lens compact.
func (w *binWriter) writeVarUint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.Write(tmp[:n])
}

// writeString prefixes its length then dumps UTF-8 directly.
func (w *binWriter) writeString(s string) {
	w.writeVarUint(uint64(len(s)))
	w.buf.WriteString(s)
}

func (w *binWriter) writeAddress(a sdk.Address) { w.writeString(a.String()) }

func (w *binWriter) writeAsset(a sdk.Asset) { w.writeString(a.String()) }

type binReader struct {
	data []byte
	pos  int
}

// newReader checks the version byte and positions the cursor after it.
func newReader(data string) (*binReader, error) {
	if len(data) == 0 {
		return nil, errors.New("empty record")
	}
	if data[0] != codecVersion {
		return nil, fmt.Errorf("unknown record version %d", data[0])
	}
	return &binReader{data: []byte(data), pos: 1}, nil
}

// readByte grabs the next byte and bumps the cursor.
func (r *binReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errors.New("unexpected EOF")
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// readBool restores bools stored via writeBool above.
func (r *binReader) readBool() (bool, error) {
	b, err := r.readByte()
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

// readUint64 decodes big endian integers for amounts and heights.
func (r *binReader) readUint64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, errors.New("unexpected EOF")
	}
	val := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return val, nil
}

// readVarUint undoes the compact varint encoding for lengths/counts.
func (r *binReader) readVarUint() (uint64, error) {
	val, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, errors.New("invalid varuint")
	}
	r.pos += n
	return val, nil
}

// readString reads the varint length then slices out the utf8 chunk.
func (r *binReader) readString() (string, error) {
	l, err := r.readVarUint()
	if err != nil {
		return "", err
	}
	if l > uint64(len(r.data)-r.pos) {
		return "", errors.New("unexpected EOF")
	}
	s := string(r.data[r.pos : r.pos+int(l)])
	r.pos += int(l)
	return s, nil
}

// readUint64s fills every pointer in order, stopping at the first error.
func (r *binReader) readUint64s(dst ...*uint64) error {
	for _, d := range dst {
		v, err := r.readUint64()
		if err != nil {
			return err
		}
		*d = v
	}
	return nil
}

// encodeConfig squeezes every config field into the binary form.
func encodeConfig(cfg *Config) string {
	w := newWriter()
	w.writeAddress(cfg.Owner)
	w.writeAsset(cfg.Token)
	w.writeUint64(cfg.TokenToSell)
	w.writeUint64(cfg.Softcap)
	w.writeUint64(cfg.Hardcap)
	w.writeUint64(cfg.MinBuy)
	w.writeUint64(cfg.MaxBuy)
	w.writeUint64(cfg.StartBlock)
	w.writeUint64(cfg.WhitelistEndBlock)
	w.writeUint64(cfg.EndBlock)
	w.writeVarUint(uint64(len(cfg.Schedule)))
	for _, m := range cfg.Schedule {
		w.writeVarUint(m.Offset)
		w.writeVarUint(m.Percent)
	}
	return w.string()
}

func decodeConfig(data string) (*Config, error) {
	r, err := newReader(data)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	owner, err := r.readString()
	if err != nil {
		return nil, err
	}
	token, err := r.readString()
	if err != nil {
		return nil, err
	}
	cfg.Owner, cfg.Token = sdk.Address(owner), sdk.Asset(token)
	if err := r.readUint64s(
		&cfg.TokenToSell, &cfg.Softcap, &cfg.Hardcap, &cfg.MinBuy, &cfg.MaxBuy,
		&cfg.StartBlock, &cfg.WhitelistEndBlock, &cfg.EndBlock,
	); err != nil {
		return nil, err
	}
	n, err := r.readVarUint()
	if err != nil {
		return nil, err
	}
	if n > MaxMilestones {
		return nil, fmt.Errorf("schedule length %d out of range", n)
	}
	cfg.Schedule = make(Schedule, n)
	for i := range cfg.Schedule {
		if cfg.Schedule[i].Offset, err = r.readVarUint(); err != nil {
			return nil, err
		}
		if cfg.Schedule[i].Percent, err = r.readVarUint(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func encodePresaleState(st *PresaleState) string {
	w := newWriter()
	w.writeUint64(st.TotalRaised)
	w.writeUint64(st.ParticipantCount)
	w.writeBool(st.Finalized)
	w.writeUint64(st.DistributionHeight)
	w.writeBool(st.DistributionStarted)
	return w.string()
}

func decodePresaleState(data string) (*PresaleState, error) {
	r, err := newReader(data)
	if err != nil {
		return nil, err
	}
	st := &PresaleState{}
	if err := r.readUint64s(&st.TotalRaised, &st.ParticipantCount); err != nil {
		return nil, err
	}
	if st.Finalized, err = r.readBool(); err != nil {
		return nil, err
	}
	if st.DistributionHeight, err = r.readUint64(); err != nil {
		return nil, err
	}
	if st.DistributionStarted, err = r.readBool(); err != nil {
		return nil, err
	}
	return st, nil
}

// encodeParticipant leaves the address out since it already sits in the key.
func encodeParticipant(p *Participant) string {
	w := newWriter()
	w.writeUint64(p.Deposit)
	w.writeUint64(p.Allocation)
	w.writeUint64(p.Claimed)
	w.writeUint64(p.Refunded)
	return w.string()
}

func decodeParticipant(addr sdk.Address, data string) (*Participant, error) {
	r, err := newReader(data)
	if err != nil {
		return nil, err
	}
	p := &Participant{Address: addr}
	if err := r.readUint64s(&p.Deposit, &p.Allocation, &p.Claimed, &p.Refunded); err != nil {
		return nil, err
	}
	return p, nil
}
