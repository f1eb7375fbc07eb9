// Package wire implements the binary frame format exchanged between a
// predicting client and the authoritative server: per-tick moves in one
// direction, authoritative state snapshots in the other.
package wire

import (
	"bytes"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/predmove/predmove/internal"
	"github.com/predmove/predmove/perror"
	"github.com/predmove/predmove/utils"
	"github.com/zeebo/xxh3"
)

const (
	_ = iota
	FrameIDMove
	FrameIDSnapshot
)

// Frame is a single unit transmitted over the transport.
type Frame interface {
	ID() byte
	Encode() []byte
}

// Move carries one simulated tick's input from the predicting client. The
// Flags byte is the compressed intent byte produced by the mode registry.
type Move struct {
	Frame     uint64
	DeltaTime float32
	Impulse   mgl32.Vec2
	Yaw       float32
	Flags     byte
}

func (Move) ID() byte { return FrameIDMove }

func (m Move) Encode() []byte {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	buf.WriteByte(m.ID())
	utils.WriteLUint64(buf, m.Frame)
	utils.WriteLFloat32(buf, m.DeltaTime)
	utils.WriteLFloat32(buf, m.Impulse[0])
	utils.WriteLFloat32(buf, m.Impulse[1])
	utils.WriteLFloat32(buf, m.Yaw)
	buf.WriteByte(m.Flags)

	return append([]byte(nil), buf.Bytes()...)
}

// Snapshot carries the authoritative post-tick state for one frame. Flags is
// the effective mode byte (confirmed active bits, not intent). The checksum
// covers every preceding payload byte so a corrupted or torn snapshot is
// dropped instead of triggering a bogus correction.
type Snapshot struct {
	Frame    uint64
	Pos      mgl32.Vec3
	Vel      mgl32.Vec3
	Flags    byte
	OnGround bool
	Checksum uint64
}

func (Snapshot) ID() byte { return FrameIDSnapshot }

func (s Snapshot) Encode() []byte {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	buf.WriteByte(s.ID())
	utils.WriteLUint64(buf, s.Frame)
	for i := 0; i < 3; i++ {
		utils.WriteLFloat32(buf, s.Pos[i])
	}
	for i := 0; i < 3; i++ {
		utils.WriteLFloat32(buf, s.Vel[i])
	}
	buf.WriteByte(s.Flags)
	if s.OnGround {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	utils.WriteLUint64(buf, xxh3.Hash(buf.Bytes()[1:]))

	return append([]byte(nil), buf.Bytes()...)
}

// Decode parses a single frame from the given data.
func Decode(dat []byte) (Frame, error) {
	if len(dat) < 1 {
		return nil, perror.New("wire: empty frame")
	}

	id, payload := dat[0], dat[1:]
	switch id {
	case FrameIDMove:
		if len(payload) != 8+4+4+4+4+1 {
			return nil, perror.New("wire: move frame has %d payload bytes", len(payload))
		}
		m := Move{}
		m.Frame = utils.LUint64(payload[0:])
		m.DeltaTime = utils.LFloat32(payload[8:])
		m.Impulse[0] = utils.LFloat32(payload[12:])
		m.Impulse[1] = utils.LFloat32(payload[16:])
		m.Yaw = utils.LFloat32(payload[20:])
		m.Flags = payload[24]
		return m, nil
	case FrameIDSnapshot:
		if len(payload) != 8+12+12+1+1+8 {
			return nil, perror.New("wire: snapshot frame has %d payload bytes", len(payload))
		}
		s := Snapshot{}
		s.Frame = utils.LUint64(payload[0:])
		for i := 0; i < 3; i++ {
			s.Pos[i] = utils.LFloat32(payload[8+i*4:])
		}
		for i := 0; i < 3; i++ {
			s.Vel[i] = utils.LFloat32(payload[20+i*4:])
		}
		s.Flags = payload[32]
		s.OnGround = payload[33] == 1
		s.Checksum = utils.LUint64(payload[34:])
		if sum := xxh3.Hash(payload[:34]); sum != s.Checksum {
			return nil, perror.New("wire: snapshot checksum mismatch (got %x, want %x)", s.Checksum, sum)
		}
		return s, nil
	default:
		return nil, perror.New("wire: unknown frame id %d", id)
	}
}
