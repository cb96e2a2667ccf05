package mp3tag

// FrameType is a four character ID3v2.3 frame identifier.
type FrameType string

const (
	FrameAttachedPicture      FrameType = "APIC"
	FrameComments             FrameType = "COMM"
	FrameEqualization         FrameType = "EQUA"
	FrameMusicCDIdentifier    FrameType = "MCDI"
	FramePlayCounter          FrameType = "PCNT"
	FramePopularimeter        FrameType = "POPM"
	FramePrivate              FrameType = "PRIV"
	FrameVolumeAdjustment     FrameType = "RVAD"
	FrameSynchronizedLyrics   FrameType = "SYLT"
	FrameAlbum                FrameType = "TALB"
	FrameComposer             FrameType = "TCOM"
	FrameContentType          FrameType = "TCON"
	FrameLyricist             FrameType = "TEXT"
	FrameTitle                FrameType = "TIT2"
	FrameLength               FrameType = "TLEN"
	FrameLeadPerformer        FrameType = "TPE1"
	FrameBand                 FrameType = "TPE2"
	FramePublisher            FrameType = "TPUB"
	FrameTrackNumber          FrameType = "TRCK"
	FrameSize                 FrameType = "TSIZ"
	FrameUserText             FrameType = "TXXX"
	FrameYear                 FrameType = "TYER"
	FrameUniqueFileIdentifier FrameType = "UFID"
	FrameUnsynchronizedLyrics FrameType = "USLT"
	FrameUserURL              FrameType = "WXXX"
)

var FrameNames = map[FrameType]string{
	"AENC": "Audio encryption",
	"APIC": "Attached picture",
	"COMM": "Comments",
	"COMR": "Commercial frame",

	"ENCR": "Encryption method registration",
	"EQUA": "Equalization",
	"ETCO": "Event timing codes",

	"GEOB": "General encapsulated object",
	"GRID": "Group identification registration",

	"IPLS": "Involved people list",

	"LINK": "Linked information",

	"MCDI": "Music CD identifier",
	"MLLT": "MPEG location lookup table",

	"OWNE": "Ownership frame",

	"PRIV": "Private frame",
	"PCNT": "Play counter",
	"POPM": "Popularimeter",
	"POSS": "Position synchronisation frame",

	"RBUF": "Recommended buffer size",
	"RVAD": "Relative volume adjustment",
	"RVRB": "Reverb",

	"SYLT": "Synchronized lyric/text",
	"SYTC": "Synchronized tempo codes",

	"TALB": "Album/Movie/Show title",
	"TBPM": "BPM (beats per minute)",
	"TCOM": "Composer",
	"TCON": "Content type",
	"TCOP": "Copyright message",
	"TDAT": "Date",
	"TDLY": "Playlist delay",
	"TENC": "Encoded by",
	"TEXT": "Lyricist/Text writer",
	"TFLT": "File type",
	"TIME": "Time",
	"TIT1": "Content group description",
	"TIT2": "Title/songname/content description",
	"TIT3": "Subtitle/Description refinement",
	"TKEY": "Initial key",
	"TLAN": "Language(s)",
	"TLEN": "Length",
	"TMED": "Media type",
	"TOAL": "Original album/movie/show title",
	"TOFN": "Original filename",
	"TOLY": "Original lyricist(s)/text writer(s)",
	"TOPE": "Original artist(s)/performer(s)",
	"TORY": "Original release year",
	"TOWN": "File owner/licensee",
	"TPE1": "Lead performer(s)/Soloist(s)",
	"TPE2": "Band/orchestra/accompaniment",
	"TPE3": "Conductor/performer refinement",
	"TPE4": "Interpreted, remixed, or otherwise modified by",
	"TPOS": "Part of a set",
	"TPUB": "Publisher",
	"TRCK": "Track number/Position in set",
	"TRDA": "Recording dates",
	"TRSN": "Internet radio station name",
	"TRSO": "Internet radio station owner",
	"TSIZ": "Size",
	"TSO2": "Album Artist sort order", // iTunes extension
	"TSOC": "Composer sort order",     // iTunes extension
	"TSRC": "ISRC (international standard recording code)",
	"TSSE": "Software/Hardware and settings used for encoding",
	"TYER": "Year",
	"TXXX": "User defined text information frame",

	"UFID": "Unique file identifier",
	"USER": "Terms of use",
	"USLT": "Unsynchronized lyric/text transcription",

	"WCOM": "Commercial information",
	"WCOP": "Copyright/Legal information",
	"WOAF": "Official audio file webpage",
	"WOAR": "Official artist/performer webpage",
	"WOAS": "Official audio source webpage",
	"WORS": "Official internet radio station homepage",
	"WPAY": "Payment",
	"WPUB": "Publishers official webpage",
	"WXXX": "User defined URL link frame",
}

func (f FrameType) String() string {
	v, ok := FrameNames[f]
	if ok {
		return v
	}

	return string(f)
}

// Known reports whether f is part of the ID3v2.3 catalog.
func (f FrameType) Known() bool {
	_, ok := FrameNames[f]
	return ok
}

func (f FrameType) valid() bool {
	if len(f) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		c := f[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

func (f FrameType) isText() bool {
	return len(f) == 4 && f[0] == 'T' && f != FrameUserText
}

func (f FrameType) isURL() bool {
	return len(f) == 4 && f[0] == 'W' && f != FrameUserURL
}

type PictureType byte

const (
	PictureOther PictureType = iota
	PictureFileIcon
	PictureOtherFileIcon
	PictureFrontCover
	PictureBackCover
	PictureLeafletPage
	PictureMedia
	PictureLeadArtist
	PictureArtist
	PictureConductor
	PictureBand
	PictureComposer
	PictureLyricist
	PictureRecordingLocation
	PictureDuringRecording
	PictureDuringPerformance
	PictureScreenCapture
	PictureBrightColouredFish
	PictureIllustration
	PictureBandLogo
	PicturePublisherLogo
)

var PictureTypes = []string{
	"Other",
	"32x32 pixels 'file icon' (PNG only)",
	"Other file icon",
	"Cover (front)",
	"Cover (back)",
	"Leaflet page",
	"Media (e.g. label side of CD)",
	"Lead artist/lead performer/soloist",
	"Artist/performer",
	"Conductor",
	"Band/Orchestra",
	"Composer",
	"Lyricist/text writer",
	"Recording Location",
	"During recording",
	"During performance",
	"Movie/video screen capture",
	"A bright coloured fish",
	"Illustration",
	"Band/artist logotype",
	"Publisher/Studio logotype",
}

func (p PictureType) String() string {
	if int(p) >= len(PictureTypes) {
		return ""
	}

	return PictureTypes[p]
}

func (p PictureType) valid() bool {
	return int(p) < len(PictureTypes)
}

// FrameFlags are the two ID3v2.3 frame flag bytes: status in the high
// byte, format in the low byte.
type FrameFlags uint16

const (
	frameFlagTagAlter   FrameFlags = 0x8000
	frameFlagFileAlter  FrameFlags = 0x4000
	frameFlagReadOnly   FrameFlags = 0x2000
	frameFlagCompressed FrameFlags = 0x0080
	frameFlagEncrypted  FrameFlags = 0x0040
	frameFlagGrouped    FrameFlags = 0x0020
	frameFlagsUndefined FrameFlags = 0x1F1F
)

func (f FrameFlags) PreserveTagAlteration() bool {
	return f&frameFlagTagAlter == 0
}

func (f FrameFlags) PreserveFileAlteration() bool {
	return f&frameFlagFileAlter == 0
}

func (f FrameFlags) ReadOnly() bool {
	return f&frameFlagReadOnly > 0
}

func (f FrameFlags) Compressed() bool {
	return f&frameFlagCompressed > 0
}

func (f FrameFlags) Encrypted() bool {
	return f&frameFlagEncrypted > 0
}

func (f FrameFlags) Grouped() bool {
	return f&frameFlagGrouped > 0
}

func (f FrameFlags) UndefinedSet() bool {
	return f&frameFlagsUndefined > 0
}
