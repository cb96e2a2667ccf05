package mp3tag

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// EqualizationBand is a single EQUA adjustment point.
type EqualizationBand struct {
	Increment  bool
	Frequency  uint16 // Hz, 15 bits
	Adjustment uint64
}

// EqualizationBody is the body of EQUA frames.
type EqualizationBody struct {
	// AdjustmentBits is the width of every adjustment, 1 to 64.
	AdjustmentBits uint8
	Bands          []EqualizationBand
}

func parseEqualizationBody(_ FrameType, data []byte) (Body, error) {
	if len(data) == 0 {
		return nil, errors.New("missing adjustment bits")
	}
	b := &EqualizationBody{AdjustmentBits: data[0]}
	if b.AdjustmentBits == 0 || b.AdjustmentBits > 64 {
		return nil, errors.Errorf("unsupported adjustment width of %d bits", b.AdjustmentBits)
	}
	width := b.width()
	data = data[1:]
	for len(data) > 0 {
		if len(data) < 2+width {
			return nil, errors.Errorf("band %d is truncated", len(b.Bands))
		}
		f := binary.BigEndian.Uint16(data)
		adj, _ := getUint(data[2 : 2+width])
		b.Bands = append(b.Bands, EqualizationBand{
			Increment:  f&0x8000 != 0,
			Frequency:  f & 0x7FFF,
			Adjustment: adj,
		})
		data = data[2+width:]
	}
	return b, nil
}

func (b *EqualizationBody) width() int { return (int(b.AdjustmentBits) + 7) / 8 }

func (b *EqualizationBody) encode() ([]byte, error) {
	if b.AdjustmentBits == 0 || b.AdjustmentBits > 64 {
		return nil, invalidArgument("adjustment width of %d bits", b.AdjustmentBits)
	}
	out := []byte{b.AdjustmentBits}
	for _, band := range b.Bands {
		if band.Frequency > 0x7FFF {
			return nil, invalidArgument("frequency %d does not fit in 15 bits", band.Frequency)
		}
		if b.AdjustmentBits < 64 && band.Adjustment>>b.AdjustmentBits != 0 {
			return nil, invalidArgument("adjustment %d does not fit in %d bits", band.Adjustment, b.AdjustmentBits)
		}
		f := band.Frequency
		if band.Increment {
			f |= 0x8000
		}
		out = binary.BigEndian.AppendUint16(out, f)
		out = append(out, putUint(band.Adjustment, b.width())...)
	}
	return out, nil
}

func (b *EqualizationBody) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "%d bit adjustments", b.AdjustmentBits)
	for _, band := range b.Bands {
		sign := "-"
		if band.Increment {
			sign = "+"
		}
		fmt.Fprintf(&s, ", %d Hz %s%d", band.Frequency, sign, band.Adjustment)
	}
	return s.String()
}

// Channel identifies an RVAD channel. Channels are stored in this
// order.
type Channel int

const (
	ChannelRight Channel = iota
	ChannelLeft
	ChannelRightBack
	ChannelLeftBack
	ChannelCenter
	ChannelBass
)

var channelNames = [...]string{"right", "left", "right back", "left back", "center", "bass"}

func (c Channel) String() string {
	if c < 0 || int(c) >= len(channelNames) {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

// ChannelAdjustment is the relative volume change and peak of one
// channel.
type ChannelAdjustment struct {
	Increment  bool
	Adjustment uint64
	Peak       uint64
}

// VolumeAdjustmentBody is the body of RVAD frames. Channels holds 2,
// 4, 5 or 6 entries indexed by Channel.
type VolumeAdjustmentBody struct {
	BitsUsed uint8
	Channels []ChannelAdjustment
}

func newVolumeAdjustmentBody() Body {
	return &VolumeAdjustmentBody{BitsUsed: 16, Channels: make([]ChannelAdjustment, 2)}
}

func validChannelCount(n int) bool {
	return n == 2 || n == 4 || n == 5 || n == 6
}

func parseVolumeAdjustmentBody(_ FrameType, data []byte) (Body, error) {
	if len(data) < 2 {
		return nil, errors.New("missing increment flags and bit width")
	}
	incr, bits := data[0], data[1]
	if bits == 0 || bits > 64 {
		return nil, errors.Errorf("unsupported adjustment width of %d bits", bits)
	}
	width := (int(bits) + 7) / 8
	data = data[2:]
	if len(data)%width != 0 {
		return nil, errors.Errorf("%d bytes of adjustments is not a multiple of %d", len(data), width)
	}
	n := len(data) / width
	values := make([]uint64, n)
	for i := range values {
		values[i], _ = getUint(data[i*width : (i+1)*width])
	}
	// Adjustment and peak pairs come grouped as: right/left volumes,
	// right/left peaks, then the same for the back channels, then
	// center volume and peak, then bass volume and peak.
	var channels int
	switch n {
	case 4:
		channels = 2
	case 8:
		channels = 4
	case 10:
		channels = 5
	case 12:
		channels = 6
	default:
		return nil, errors.Errorf("%d adjustment values do not describe 2, 4, 5 or 6 channels", n)
	}
	b := &VolumeAdjustmentBody{BitsUsed: bits, Channels: make([]ChannelAdjustment, channels)}
	for c := range b.Channels {
		vi, pi := rvadLayout(Channel(c))
		b.Channels[c] = ChannelAdjustment{
			Increment:  incr&(1<<uint(c)) != 0,
			Adjustment: values[vi],
			Peak:       values[pi],
		}
	}
	return b, nil
}

// rvadLayout returns the value indices of a channel's adjustment and
// peak.
func rvadLayout(c Channel) (volume, peak int) {
	switch c {
	case ChannelRight, ChannelLeft:
		return int(c), int(c) + 2
	case ChannelRightBack, ChannelLeftBack:
		return int(c) + 2, int(c) + 4
	case ChannelCenter:
		return 8, 9
	default:
		return 10, 11
	}
}

func (b *VolumeAdjustmentBody) encode() ([]byte, error) {
	if b.BitsUsed == 0 || b.BitsUsed > 64 {
		return nil, invalidArgument("adjustment width of %d bits", b.BitsUsed)
	}
	if !validChannelCount(len(b.Channels)) {
		return nil, invalidArgument("%d channels, want 2, 4, 5 or 6", len(b.Channels))
	}
	width := (int(b.BitsUsed) + 7) / 8
	values := make([]uint64, 2*len(b.Channels))
	var incr byte
	for c, ch := range b.Channels {
		if ch.Increment {
			incr |= 1 << uint(c)
		}
		vi, pi := rvadLayout(Channel(c))
		values[vi], values[pi] = ch.Adjustment, ch.Peak
	}
	out := []byte{incr, b.BitsUsed}
	for _, v := range values {
		out = append(out, putUint(v, width)...)
	}
	return out, nil
}

func (b *VolumeAdjustmentBody) String() string {
	var parts []string
	for c, ch := range b.Channels {
		sign := "-"
		if ch.Increment {
			sign = "+"
		}
		parts = append(parts, fmt.Sprintf("%s %s%d (peak %d)", Channel(c), sign, ch.Adjustment, ch.Peak))
	}
	return strings.Join(parts, ", ")
}
